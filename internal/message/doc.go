// Package message models HTTP/0.9-1.1 requests and responses.
//
// A Message carries everything the parser fills in and the serializer
// reads back: start-line fields, a lower-cased header mapping, a cookie
// jar, GET/POST variables, route parameters and the body. Header and
// variable mappings iterate in lexicographic key order, and that order is
// what ends up on the wire.
//
// # Building a request
//
//	req := message.NewRequest()
//	if err := req.Setup("post", "http://example.org/test"); err != nil {
//	    return err
//	}
//	req.PostVars.Set("one", "w")
//	req.PreparePost(message.FormURLEncoded)
//
// # Replying to a request
//
//	resp := message.NewReply(req)
//	resp.Status = 200
//	resp.Body = []byte("ok")
package message
