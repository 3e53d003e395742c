package lexer

import (
	"testing"

	"tt/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tt", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("expected EOF state at the end")
	}
}

func TestMarkSpanReset(t *testing.T) {
	cursor := NewCursor(createFile("hello"))
	m := cursor.Mark()
	cursor.Advance(3)
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 3 {
		t.Fatalf("unexpected span %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset did not rewind, off=%d", cursor.Off)
	}
	cursor.Advance(100)
	if cursor.Off != 5 {
		t.Fatalf("Advance must clamp at end, off=%d", cursor.Off)
	}
}

func TestPeek2AndEat(t *testing.T) {
	cursor := NewCursor(createFile("/*"))
	b0, b1, ok := cursor.Peek2()
	if !ok || b0 != '/' || b1 != '*' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if cursor.Eat('*') {
		t.Fatalf("Eat must not consume a different byte")
	}
	if !cursor.Eat('/') {
		t.Fatalf("Eat should consume '/'")
	}
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatalf("Peek2 must fail with one byte left")
	}
}
