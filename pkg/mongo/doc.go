// Package mongo persists documents in MongoDB.
//
// New and NewWithDatabase open a client from an environment driven Config,
// retrying the initial connection. Repository stores the documents of one
// schema in one collection, keyed by document id:
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	articles := mongo.NewRepository(db, "articles", s)
//
//	if err := articles.Insert(ctx, doc); err != nil {
//		// validation or driver error
//	}
//	doc, err = articles.FindByID(ctx, doc.ID())
//
// Records hold the multi-language form of a document. Decoded values are
// normalized back to plain maps, slices, float64 numbers and UTC times, so a
// loaded document behaves like the one that was stored.
//
// # Error Handling
//
// ErrNotFound matches document.ErrNotFound. Driver failures are wrapped.
//
//	if errors.Is(err, document.ErrNotFound) {
//		// 404
//	}
package mongo
