// Package resolver turns asset paths into public URLs for templates.
package resolver

import (
	"context"
	"html/template"
	"strings"
)

// URLResolver maps an asset path to the URL a page should reference
type URLResolver interface {
	ResolveURL(path string) string
}

// Preprocessor is the part of the SCSS parser the Resolver needs
type Preprocessor interface {
	IsEnabled() bool
	IsConfigured(path string) bool
	ResolveURL(ctx context.Context, path string) string
}

// PathResolver prefixes relative paths with BasePath. Absolute and
// protocol-relative URLs pass through.
type PathResolver struct {
	BasePath string
}

func (r PathResolver) ResolveURL(path string) string {
	if isAbsoluteURL(path) || strings.HasPrefix(path, "/") {
		return path
	}

	return strings.TrimRight(r.BasePath, "/") + "/" + path
}

func isAbsoluteURL(path string) bool {
	if strings.HasPrefix(path, "//") {
		return true
	}

	scheme, _, ok := strings.Cut(path, "://")
	return ok && scheme != "" && !strings.ContainsAny(scheme, "/?#")
}

// Resolver serves configured SCSS assets from the parser, compiling them on
// demand, and hands every other path to the wrapped resolver.
type Resolver struct {
	ctx    context.Context
	parser Preprocessor
	next   URLResolver
}

// New wraps next. ctx bounds any compile triggered by a lookup.
func New(ctx context.Context, parser Preprocessor, next URLResolver) *Resolver {
	if next == nil {
		next = PathResolver{}
	}

	return &Resolver{ctx: ctx, parser: parser, next: next}
}

func (r *Resolver) ResolveURL(path string) string {
	if r.parser != nil && r.parser.IsEnabled() && r.parser.IsConfigured(path) {
		return r.parser.ResolveURL(r.ctx, path)
	}

	return r.next.ResolveURL(path)
}

// FuncMap exposes r to html/template as the asset function:
//
//	<link rel="stylesheet" href="{{ asset "main" }}">
func FuncMap(r URLResolver) template.FuncMap {
	return template.FuncMap{
		"asset": r.ResolveURL,
	}
}
