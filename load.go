package goarxml

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/internal/types"
	"github.com/goarxml/goarxml/parser"
	"github.com/goarxml/goarxml/xmltree"
)

// Load reads every document of source and builds a Workspace.
//
// Documents are parsed in parallel, each with its own parser instances.
// An element that fails to parse is dropped and reported as a
// diagnostic; loading continues with the next element. Load returns
// the Workspace together with a *LoadError when a reported diagnostic
// reaches the configured FailAt severity.
//
// Example:
//
//	src, _ := goarxml.DirTree("./arxml")
//	ws, err := goarxml.Load(ctx, src,
//	    goarxml.WithSchemaVersion(parser.Version4),
//	    goarxml.WithLogger(slog.Default()),
//	)
func Load(ctx context.Context, source Source, opts ...LoadOption) (*Workspace, error) {
	if source == nil {
		return nil, ErrNoSources
	}
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	base := types.Logger{L: cfg.logger}
	log := base.Component("loader")
	xmlLog := base.Component("xml")

	files, err := source.ListFiles()
	if err != nil {
		return nil, err
	}

	log.Log(slog.LevelInfo, "loading documents",
		slog.Int("files", len(files)),
		slog.String("schema", cfg.version.String()))

	results := make([]fileResult, len(files))
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.concurrency)

	for i, file := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			results[i] = loadFile(ctx, source, path, cfg, log, xmlLog)
		}(i, file)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	ws := &Workspace{}
	var diags []Diagnostic
	for _, r := range results {
		diags = append(diags, r.diags...)
		if r.doc == nil {
			continue
		}
		for _, ref := range ws.merge(r.doc) {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     types.DiagDuplicateConst,
				Message:  "constant already defined by an earlier document",
				File:     r.doc.File,
				Path:     ref,
			})
		}
	}

	diags = append(diags, ws.checkReferences()...)

	var failure *Diagnostic
	for _, d := range diags {
		if !cfg.diagConfig.ShouldReport(d.Code) {
			continue
		}
		ws.Diagnostics = append(ws.Diagnostics, d)
		if failure == nil && cfg.diagConfig.ShouldFail(d.Severity) {
			failure = &ws.Diagnostics[len(ws.Diagnostics)-1]
		}
	}

	log.Log(slog.LevelInfo, "loading complete",
		slog.Int("documents", len(ws.Documents)),
		slog.Int("diagnostics", len(ws.Diagnostics)))

	if failure != nil {
		return ws, &LoadError{Diagnostic: *failure}
	}
	return ws, nil
}

type fileResult struct {
	doc   *Document
	diags []Diagnostic
}

// loadFile parses one document. It never fails; problems become diagnostics.
func loadFile(ctx context.Context, source Source, path string, cfg loadConfig, log, xmlLog types.Logger) fileResult {
	var res fileResult
	fatal := func(code, msg string) fileResult {
		res.diags = append(res.diags, Diagnostic{Severity: SeverityFatal, Code: code, Message: msg, File: path})
		return res
	}

	rc, err := source.Open(path)
	if err != nil {
		return fatal(types.DiagReadFailed, err.Error())
	}
	content, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return fatal(types.DiagReadFailed, err.Error())
	}

	if !looksLikeARXML(content) {
		res.diags = append(res.diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     types.DiagNotAutosar,
			Message:  "content does not look like an AUTOSAR document",
			File:     path,
		})
		return res
	}

	root, err := xmltree.Parse(bytes.NewReader(content))
	if err != nil {
		xmlLog.Log(slog.LevelDebug, "xml syntax error",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fatal(types.DiagXMLSyntax, err.Error())
	}
	xmlLog.Trace("document tree built",
		slog.String("file", path),
		slog.String("root", root.Tag()),
		slog.Int("bytes", len(content)))
	if root.Tag() != "AUTOSAR" {
		return fatal(types.DiagNotAutosar, fmt.Sprintf("root element is <%s>, want <AUTOSAR>", root.Tag()))
	}

	log.Log(slog.LevelDebug, "parsing document", slog.String("file", path))

	w := &docWalker{
		ctx:  ctx,
		cfg:  cfg,
		file: path,
		log:  log,
		reg:  parser.NewRegistry(cfg.version, cfg.factories...),
	}
	doc := &Document{File: path}
	for _, tag := range []string{"AR-PACKAGES", "TOP-LEVEL-PACKAGES"} {
		if container := xmltree.Find(root, tag); container != nil {
			doc.Packages = append(doc.Packages, w.walkPackages(container, nil)...)
		}
	}

	log.Log(slog.LevelDebug, "document parsed",
		slog.String("file", path),
		slog.Int("packages", len(doc.Packages)),
		slog.Int("diagnostics", len(w.diags)))

	res.doc = doc
	res.diags = append(res.diags, w.diags...)
	return res
}

// docWalker walks the AR-PACKAGE hierarchy of one document.
type docWalker struct {
	ctx   context.Context
	cfg   loadConfig
	file  string
	log   types.Logger
	reg   *parser.Registry
	diags []Diagnostic
}

func (w *docWalker) walkPackages(container xmltree.Node, parent *Package) []*Package {
	var out []*Package
	for _, n := range xmltree.FindAll(container, "AR-PACKAGE") {
		if w.ctx.Err() != nil {
			return out
		}
		if pkg := w.walkPackage(n, parent); pkg != nil {
			out = append(out, pkg)
		}
	}
	return out
}

func (w *docWalker) walkPackage(n xmltree.Node, parent *Package) *Package {
	name, _ := xmltree.ChildText(n, "SHORT-NAME")
	if name == "" {
		d := w.diag(SeverityWarning, types.DiagPackageNoName, "AR-PACKAGE without SHORT-NAME skipped", n)
		if parent != nil {
			d.Path = parent.Path
		}
		w.diags = append(w.diags, d)
		return nil
	}
	pkg := newPackage(name, parent)
	w.log.Trace("package", slog.String("path", pkg.Path))

	for _, child := range n.Children() {
		switch child.Tag() {
		case "ELEMENTS":
			for _, el := range child.Children() {
				if w.ctx.Err() != nil {
					return pkg
				}
				w.parseElement(el, pkg)
			}
		case "AR-PACKAGES", "SUB-PACKAGES":
			pkg.Packages = append(pkg.Packages, w.walkPackages(child, pkg)...)
		}
	}
	return pkg
}

func (w *docWalker) parseElement(n xmltree.Node, pkg *Package) {
	el, ok, handled, err := w.reg.Parse(n, pkg)
	name, _ := xmltree.ChildText(n, "SHORT-NAME")
	path := pkg.Path + "/" + name

	switch {
	case !handled:
		if w.log.TraceEnabled() {
			w.log.Trace("no parser for element", slog.String("tag", n.Tag()), slog.String("path", path))
		}
		d := w.diag(SeverityInfo, types.DiagElementUnsupported, fmt.Sprintf("no parser for <%s>", n.Tag()), n)
		d.Path = path
		w.diags = append(w.diags, d)

	case err != nil:
		w.log.Log(slog.LevelDebug, "element failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		d := w.diag(SeverityError, parser.Code(err), err.Error(), n)
		d.Path = path
		w.diags = append(w.diags, d)
		// A failed parser may hold a stale context; start over with fresh ones.
		w.reg = parser.NewRegistry(w.cfg.version, w.cfg.factories...)

	case !ok:
		d := w.diag(SeverityInfo, types.DiagElementSkipped, fmt.Sprintf("<%s> produced no element", n.Tag()), n)
		d.Path = path
		w.diags = append(w.diags, d)

	default:
		if c, isConst := el.(*constant.Constant); isConst {
			pkg.Constants = append(pkg.Constants, c)
		} else {
			pkg.Elements = append(pkg.Elements, el)
		}
		w.log.Trace("element parsed", slog.String("path", path), slog.String("tag", n.Tag()))
	}
}

func (w *docWalker) diag(sev Severity, code, msg string, n xmltree.Node) Diagnostic {
	d := Diagnostic{Severity: sev, Code: code, Message: msg, File: w.file}
	if el, ok := n.(*xmltree.Element); ok {
		d.Line = el.Line
	}
	return d
}

var sigAutosar = []byte("<AUTOSAR")

const (
	binaryCheckSize = 1024
	maxProbeSize    = 64 * 1024
)

// looksLikeARXML rejects binary content and files without an AUTOSAR
// root tag near the top.
func looksLikeARXML(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	if bytes.IndexByte(content[:min(binaryCheckSize, len(content))], 0) >= 0 {
		return false
	}
	return bytes.Contains(content[:min(maxProbeSize, len(content))], sigAutosar)
}
