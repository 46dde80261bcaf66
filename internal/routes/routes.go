package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fiich/fiich-api/internal/handlers"
)

// NewRouter sets up the API routes.
func NewRouter(
	auth *handlers.AuthHandler,
	company *handlers.CompanyHandler,
	invite *handlers.InviteHandler,
	share *handlers.ShareHandler,
	document *handlers.DocumentHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/signup", auth.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/login", auth.Login).Methods(http.MethodPost)

	// Everything below requires an authenticated identity.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.JWTMiddleware)

	api.HandleFunc("/companies", company.ListCompanies).Methods(http.MethodGet)
	api.HandleFunc("/companies", company.CreateCompany).Methods(http.MethodPost)
	api.HandleFunc("/companies/{companyID}", company.GetCompany).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyID}", company.UpdateCompany).Methods(http.MethodPut)

	api.HandleFunc("/companies/{companyID}/documents", document.ListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyID}/documents/{type}", document.UploadDocument).Methods(http.MethodPost)

	api.HandleFunc("/companies/{companyID}/invites", invite.CreateInvite).Methods(http.MethodPost)
	api.HandleFunc("/invites", invite.ListInvites).Methods(http.MethodGet)
	api.HandleFunc("/invites/{inviteID}/accept", invite.AcceptInvite).Methods(http.MethodPost)
	api.HandleFunc("/invites/{inviteID}/decline", invite.DeclineInvite).Methods(http.MethodPost)

	api.HandleFunc("/shares", share.ListShares).Methods(http.MethodGet)
	api.HandleFunc("/shares/{shareID}", share.GetSharedCompany).Methods(http.MethodGet)

	return router
}
