// Package api is the SkillSwap API client. Each method performs exactly one
// HTTP round trip against the remote server and returns typed values from
// pkg/types. Failures are classified by internal/common/httpclient into
// apperrors.ErrTransport or apperrors.ErrAPI.
package api

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/common/httpclient"
	"github.com/tidwall/gjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Failure messages used when the server does not say what went wrong.
const (
	msgFetchSkills       = "failed to fetch skills"
	msgFetchUser         = "failed to fetch user profile"
	msgFetchSkill        = "failed to fetch skill"
	msgFetchSession      = "failed to fetch session"
	msgFetchUpcoming     = "failed to fetch upcoming sessions"
	msgUpdateStatus      = "failed to update session status"
	msgRegisterSession   = "failed to register session"
	msgRegisterUser      = "failed to register user"
	msgAddSkill          = "failed to add skill"
	msgSearchSkills      = "failed to search skills"
	msgFetchSuggested    = "failed to fetch suggested skills"
	msgSubmitReview      = "failed to submit review"
	msgFetchReviews      = "failed to fetch reviews"
	msgFetchUsers        = "failed to fetch users"
	invalidResponseLabel = "invalid response"
)

// Client talks to the SkillSwap API. It keeps no state between calls.
type Client struct {
	http httpclient.HTTPClientInterface
}

// NewClient creates a Client over the given HTTP client.
func NewClient(c httpclient.HTTPClientInterface) *Client {
	return &Client{http: c}
}

// New creates a Client for the server at serverURL.
func New(serverURL string) *Client {
	return NewClient(httpclient.NewClient(httpclient.StaticConfig(serverURL)))
}

func idPath(prefix string, id int64, suffix ...string) string {
	p := prefix + "/" + strconv.FormatInt(id, 10)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// decode unmarshals body into v. A 2xx body that does not decode means the
// request never produced a usable response, so it is a transport failure.
func decode(body []byte, v any, failure string) error {
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.ErrTransport.MsgErr(failure+": "+invalidResponseLabel, err)
	}
	return nil
}

// decodeList reads a list either as a bare array or from the named field of
// an envelope object.
func decodeList(body []byte, field string, v any, failure string) error {
	if !gjson.ValidBytes(body) {
		return apperrors.ErrTransport.New(failure + ": " + invalidResponseLabel)
	}
	if gjson.ParseBytes(body).IsArray() {
		return decode(body, v, failure)
	}
	r := gjson.GetBytes(body, field)
	if !r.Exists() || r.Type == gjson.Null {
		return decode([]byte("[]"), v, failure)
	}
	return decode([]byte(r.Raw), v, failure)
}

// ackID returns the first integer found under keys, for responses that
// acknowledge a mutation instead of returning the resource.
func ackID(body []byte, keys ...string) (int64, bool) {
	for _, k := range keys {
		if r := gjson.GetBytes(body, k); r.Type == gjson.Number {
			return r.Int(), true
		}
	}
	return 0, false
}

// isResource reports whether body looks like a full resource: an object that
// carries every one of fields.
func isResource(body []byte, fields ...string) bool {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return false
	}
	for _, f := range fields {
		if !gjson.GetBytes(body, f).Exists() {
			return false
		}
	}
	return true
}

func invalidAck(failure string) error {
	return apperrors.ErrTransport.New(failure + ": " + invalidResponseLabel)
}
