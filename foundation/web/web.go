// Package web is a small layer over gin that lets handlers return errors and
// share a request scoped context.Context.
package web

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles an http request inside the web framework.
type Handler func(c *Context) error

// Middleware runs some code before and/or after another Handler.
type Middleware func(Handler) Handler

// App is the entrypoint into the application. It embeds the gin engine so the
// plain gin routing methods (GET, HEAD, Static ...) stay available.
type App struct {
	*gin.Engine
	mw []Middleware
}

// NewApp creates an App with recovery and request logging installed.
func NewApp(mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger())

	return &App{
		Engine: engine,
		mw:     mw,
	}
}

func (a *App) handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := &Context{
			Context: gc,
			Ctx:     gc.Request.Context(),
		}

		if err := handler(c); err != nil {
			log.Printf("web: %s %s: %v", method, path, err)
		}
	})
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

// wrapMiddleware wraps handler so that mw[0] is the outermost layer.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if h := mw[i]; h != nil {
			handler = h(handler)
		}
	}

	return handler
}

// WithValue is a helper for middleware that need to attach request values.
func (c *Context) WithValue(key, value any) {
	c.Ctx = context.WithValue(c.Ctx, key, value)
}
