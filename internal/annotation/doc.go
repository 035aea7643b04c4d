// Package annotation marks dictionary terms inside lesson text and extracts
// the sentence a term was taken from.
//
// Everything here is a pure function of its arguments: no I/O, no shared
// state. Annotate and ExtractContext may be called from any number of
// goroutines.
//
//	dict := annotation.FromMap(map[string]string{"Haustür": "front door"})
//	paragraphs := annotation.Annotate(lesson.Content, dict)
//	html := annotation.RenderHTML(paragraphs)
//
//	if ctx, ok := annotation.ExtractContext(lesson.Content, "Haustür"); ok {
//		card.Contexts, _ = annotation.AppendContext(card.Contexts, ctx)
//	}
//
// Offsets in Context are counted in runes.
package annotation
