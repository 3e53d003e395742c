package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const maxFuzzInput = 16 << 10

var definitionSeeds = []string{
	"core.exp = A: ident | B: l: ident * r: ident | Foo\n",
	"a.b.c = X: a.b.c[] | Y: a.b.c? | Z: unit * range\n",
	"@json(\"node\") t = K: ident[] ; u = V: t?\n",
	"a. = X\n",
	"x = A: ident[]? | A\n",
	"/* unterminated",
	"t = A: \"str\n",
}

var matcherSeeds = []string{
	"package p\nfunc f(e *E) int { return __match[int](e, /*| A(x) */ func(x int) int { return x }, /*| _ */ func() int { return 0 }) }\n",
	"x := __match[T](s, /*| Ret(Some(e)) */ a, /*| Block([i, j]) */ b, /*| Ret(None) */ c)\n",
	"__match(__match(x, /*| _ */ f), /*| B(_, y) */ g)\n",
	"__match(x, /*| A( */ f)\n",
	"s := \"__match(\" + `/*| A */`\n",
}

func addSeeds(f *testing.F, seeds []string, exampleGlob string) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
	paths, _ := filepath.Glob(filepath.Join("..", "..", "examples", "*", exampleGlob))
	for _, p := range paths {
		// #nosec G304 -- path comes from the repository examples
		src, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f.Add(clamp(src))
	}
}

func clamp(b []byte) []byte {
	if len(b) > maxFuzzInput {
		b = b[:maxFuzzInput]
	}
	return append([]byte(nil), b...)
}
