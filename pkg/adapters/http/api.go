package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists one handler per operation of openapi.yaml.
type ServerInterface interface {
	GetHealth(w http.ResponseWriter, r *http.Request)
	GetInfo(w http.ResponseWriter, r *http.Request)
	ListSignals(w http.ResponseWriter, r *http.Request)
	GetSignal(w http.ResponseWriter, r *http.Request, signalID string)
	GetSignalFrame(w http.ResponseWriter, r *http.Request, signalID string)
	ListSessions(w http.ResponseWriter, r *http.Request)
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request, sessionID string)
	DeleteSession(w http.ResponseWriter, r *http.Request, sessionID string)
	SelectSignal(w http.ResponseWriter, r *http.Request, sessionID string)
	SetParams(w http.ResponseWriter, r *http.Request, sessionID string)
	GetSessionFrame(w http.ResponseWriter, r *http.Request, sessionID string)
	SubscribeEvents(w http.ResponseWriter, r *http.Request, sessionID string)
}

// InvalidParamFormatError is returned when a path parameter fails to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ServerInterfaceWrapper extracts path parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) bindPath(w http.ResponseWriter, r *http.Request, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) withSignalID(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var signalID string
		if siw.bindPath(w, r, "signalID", &signalID) {
			fn(w, r, signalID)
		}
	}
}

func (siw *ServerInterfaceWrapper) withSessionID(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if siw.bindPath(w, r, "sessionID", &sessionID) {
			fn(w, r, sessionID)
		}
	}
}

// HandlerFromMux registers every operation on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err)
		},
	}

	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)
	r.Get("/signals", si.ListSignals)
	r.Get("/signals/{signalID}", wrapper.withSignalID(si.GetSignal))
	r.Get("/signals/{signalID}/frame", wrapper.withSignalID(si.GetSignalFrame))
	r.Get("/sessions", si.ListSessions)
	r.Post("/sessions", si.CreateSession)
	r.Get("/sessions/{sessionID}", wrapper.withSessionID(si.GetSession))
	r.Delete("/sessions/{sessionID}", wrapper.withSessionID(si.DeleteSession))
	r.Put("/sessions/{sessionID}/signal", wrapper.withSessionID(si.SelectSignal))
	r.Patch("/sessions/{sessionID}/params", wrapper.withSessionID(si.SetParams))
	r.Get("/sessions/{sessionID}/frame", wrapper.withSessionID(si.GetSessionFrame))
	r.Get("/sessions/{sessionID}/events", wrapper.withSessionID(si.SubscribeEvents))
	return r
}
