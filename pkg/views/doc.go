// Package views renders HTML pages from template files resolved at runtime.
//
// Templates are html/template files loaded from a directory (VIEWS_DIR).
// Each file is addressed by its base name and exposed as a templ.Component,
// so pages are written with handler.Templ like any compiled component:
//
//	renderer, err := views.New("web/views", views.WithReload(env.IsDevelopment()))
//	if err != nil {
//		return err
//	}
//
//	return handler.Templ(renderer.Component("login.html", data))
package views
