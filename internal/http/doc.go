// Package http provides HTTP handlers and middleware for the meeting
// coordination API.
//
// The router exposes the following endpoints:
//   - POST /register: creates an account. Body: {"display_name","email",
//     "password","photo_url"}. Responds with the user profile.
//   - POST /login: issues a session token. Body: {"email","password"}.
//     Response: {"token","expires_at","user"} with the token also surfaced
//     via the `X-Session-Token` header and a `session_token` cookie.
//   - POST /logout: revokes the session token taken from the Authorization
//     header or session cookie. Returns 204 No Content and clears the cookie.
//   - GET /users/{id}, PUT /users/{id}/status: profile lookup and presence
//     updates exchanging the `userDTO` payload defined in user_handler.go.
//   - GET /teams, POST /teams, POST /teams/{id}/join, POST /teams/{id}/leave:
//     team catalog and membership endpoints exchanging the `teamDTO` payload
//     defined in team_handler.go.
//   - GET /meetings: the principal's upcoming-meeting feed, merged across
//     member teams, ascending by scheduled time.
//   - POST /meetings: schedules a meeting into a team. The response is the
//     new feed entry so clients can insert it locally without a re-fetch.
//   - POST /meetings/instant: obtains a room token for immediate use.
//   - POST /meetings/join: exchanges a meeting code for a room token.
//
// Everything except /register and /login requires a valid session.
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
