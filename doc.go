// Package funtext animates text inside designated containers of a document
// tree, one character at a time.
//
// Every container carrying the target class ("fun-text" by default) has its
// text split into per-character units. Units either wiggle immediately, or,
// in containers that also carry the letter-mode class ("appear-by-letter"),
// bounce in one after another and start wiggling once the last one has
// appeared.
//
// # Quick start
//
//	doc, err := funtext.ParseHTMLString(`<div class="fun-text appear-by-letter">Hi!</div>`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	engine := funtext.NewEngine(doc, funtext.DefaultConfig())
//	if err := engine.Initialize(); err != nil {
//		log.Fatal(err)
//	}
//	doc.Update(3) // advance the document clock; deferred transitions fire here
//	_ = doc.WriteHTML(os.Stdout)
//
// # Document tree
//
// A [Document] owns a tree of [Node] values rooted at a body element, and a
// [Scheduler] that drives deferred callbacks. Time only moves when the owner
// calls [Document.Update], typically once per frame from [Player].
//
// # Modifier classes
//
// A container may carry "smoothness-0" to "smoothness-4" to make its wiggle
// stepped instead of smooth. The lowest level present wins. Elements with
// the label class ("fun-label") are never split.
//
// # Effects
//
// The engine only assigns effect names, durations and delays. The
// [Stylesheet] defines what "fun-letter-appear" and "fun-wiggle" look like,
// samples them for [DrawDocument], and exports them as CSS for use in a
// browser.
//
// funtext is single-threaded: documents, engines and schedulers must be used
// from one goroutine.
package funtext
