// Package web is the small framework layer the controllers are built on:
// a gin engine with error-returning handlers, a request context carrying
// the request's context.Context, and request errors that know their HTTP
// status.
package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every controller method implements.
type Handler func(c *Context) error

// Middleware wraps a Handler with pre/post behavior, authentication being
// the usual case.
type Middleware func(Handler) Handler

// App is the gin engine plus the handler adaptation.
type App struct {
	*gin.Engine
}

func NewApp() *App {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	return &App{Engine: engine}
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodDelete, path, handler, mw...)
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	// Wrap in reverse so the first middleware runs first.
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}

	a.Engine.Handle(method, path, func(c *gin.Context) {
		ctx := NewContext(c)
		if err := handler(ctx); err != nil && !ctx.Writer.Written() {
			_ = ctx.RespondError(err)
		}
	})
}
