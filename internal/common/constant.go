package common

// SessionCookieName is the cookie carrying the session token between the
// HTTP boundary and clients.
const SessionCookieName = "session_id"
