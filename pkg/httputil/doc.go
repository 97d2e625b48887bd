// Package httputil provides the HTTP plumbing of the viewer server.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code and [WriteError] turns an
// error into a JSON body whose status follows the error code:
//
//	if err != nil {
//	    httputil.WriteError(w, err)
//	    return
//	}
//	httputil.WriteJSON(w, http.StatusOK, run)
//
// # Query parameters
//
// [Query] reads typed query parameters and remembers the first parse
// failure, so a handler checks for errors once:
//
//	q := httputil.NewQuery(r)
//	count := q.Int("count", 1000)
//	zoom := q.Float("zoom", 1)
//	if err := q.Err(); err != nil {
//	    httputil.WriteError(w, err)
//	    return
//	}
//
// # Middleware
//
// [Observe] reports every request to the registered HTTP hooks of package
// observability.
package httputil
