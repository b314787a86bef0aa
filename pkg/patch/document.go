package patch

import "strings"

// Document is an ordered sequence of lines, each retaining its original line
// terminator. A Document is exclusively owned by the operation mutating it;
// every Apply/Merge entry point clones its input before touching it.
type Document []string

// SplitLines splits text into lines, preserving each line's terminator. A
// final line without a trailing newline is kept as-is, so
// SplitLines(text).String() == text for every input.
func SplitLines(text string) Document {
	if text == "" {
		return Document{}
	}
	var doc Document
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			doc = append(doc, text)
			break
		}
		doc = append(doc, text[:i+1])
		text = text[i+1:]
	}
	return doc
}

// String reassembles the document into a single text blob.
func (d Document) String() string {
	return strings.Join(d, "")
}

// Clone returns an independent copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	copy(out, d)
	return out
}

func splice(target []string, index, deleteCount int, replacement []string) []string {
	if deleteCount == 0 && len(replacement) == 0 {
		return target
	}
	result := make([]string, 0, len(target)-deleteCount+len(replacement))
	result = append(result, target[:index]...)
	result = append(result, replacement...)
	result = append(result, target[index+deleteCount:]...)
	return result
}
