// Package services contains the application services behind the CLI views.
//
// Services validate input locally before any request is sent, so the user
// gets the same messages whether or not the backend is reachable. Errors
// from the API client are returned unchanged and can be matched with
// errors.Is against the client sentinels.
package services
