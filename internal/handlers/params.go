package handlers

import (
	"net/http"
	"strconv"
)

// getParam returns a path or query parameter value regardless of whether the
// router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

func getIntParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(getParam(r, name))
}

// currentUserID reads the authenticated user id placed in the request context
// by the JWT middleware. Zero means unauthenticated.
func currentUserID(r *http.Request) int {
	id, _ := r.Context().Value("user_id").(int)
	return id
}

func currentUserRole(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}
