// Package cardsapi implements store.CardSource against a remote card API
// that serves JSON card lists at {base}/cards and {base}/cards?category=X.
// Requests use a pooled client from go-cleanhttp and are bounded by the
// configured timeout.
package cardsapi
