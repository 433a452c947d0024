package goarxml

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goarxml/goarxml/internal/testutil"
)

// benchCorpus generates docs documents of n constants each. Every other
// constant is a record that references its predecessor.
func benchCorpus(docs, n int) fstest.MapFS {
	fsys := fstest.MapFS{}
	for d := range docs {
		var b strings.Builder
		fmt.Fprintf(&b, "<AR-PACKAGE><SHORT-NAME>Doc%d</SHORT-NAME><ELEMENTS>", d)
		for i := range n {
			fmt.Fprintf(&b, "<CONSTANT-SPECIFICATION><SHORT-NAME>C%d</SHORT-NAME><VALUE-SPEC>", i)
			if i%2 == 1 {
				fmt.Fprintf(&b, `<RECORD-VALUE-SPECIFICATION><FIELDS>
<NUMERICAL-VALUE-SPECIFICATION><SHORT-LABEL>Raw</SHORT-LABEL><VALUE>%d</VALUE></NUMERICAL-VALUE-SPECIFICATION>
<CONSTANT-REFERENCE><SHORT-LABEL>Prev</SHORT-LABEL><CONSTANT-REF DEST="CONSTANT-SPECIFICATION">/Doc%d/C%d</CONSTANT-REF></CONSTANT-REFERENCE>
</FIELDS></RECORD-VALUE-SPECIFICATION>`, i, d, i-1)
			} else {
				fmt.Fprintf(&b, "<NUMERICAL-VALUE-SPECIFICATION><VALUE>%d.5</VALUE></NUMERICAL-VALUE-SPECIFICATION>", i)
			}
			b.WriteString("</VALUE-SPEC></CONSTANT-SPECIFICATION>")
		}
		b.WriteString("</ELEMENTS></AR-PACKAGE>")
		fsys[fmt.Sprintf("doc%03d.arxml", d)] = &fstest.MapFile{Data: []byte(testutil.Document(b.String()))}
	}
	return fsys
}

func BenchmarkLoadCorpus(b *testing.B) {
	src := FS("bench", benchCorpus(32, 200))
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		ws, err := Load(ctx, src)
		if err != nil {
			b.Fatalf("Load failed: %v", err)
		}
		_ = ws
	}
}

func BenchmarkLoadSingleDocument(b *testing.B) {
	src := FS("bench", benchCorpus(1, 200))
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		ws, err := Load(ctx, src, WithConcurrency(1))
		if err != nil {
			b.Fatalf("Load failed: %v", err)
		}
		_ = ws
	}
}
