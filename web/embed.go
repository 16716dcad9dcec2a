// Package web embeds the server-rendered templates and static assets.
package web

import "embed"

// TemplatesFS embeds HTML templates for server-side rendering.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds static assets (css).
//
//go:embed static/*
var StaticFS embed.FS
