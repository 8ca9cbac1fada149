package resolver

import "github.com/wikiroam/randomarticle/internal/models"

// ErrorKind classifies why a resolution failed.
type ErrorKind int

const (
	// KindNone means the resolution succeeded
	KindNone ErrorKind = iota

	// KindNoRandomTitle means the title provider was unreachable or
	// exhausted its retries
	KindNoRandomTitle

	// KindContentUnavailable means a title was resolved but full content
	// could not be fetched or stored
	KindContentUnavailable

	// KindInvalidConfiguration means a required collaborator was missing
	// at construction
	KindInvalidConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNoRandomTitle:
		return "no_random_title"
	case KindContentUnavailable:
		return "content_unavailable"
	case KindInvalidConfiguration:
		return "invalid_configuration"
	default:
		return "unknown"
	}
}

// Message returns the user-facing description for a failure kind.
func (k ErrorKind) Message() string {
	switch k {
	case KindNoRandomTitle:
		return "Could not pick a random article. Check your connection and try again."
	case KindContentUnavailable:
		return "The article could not be loaded. Try again."
	case KindInvalidConfiguration:
		return "This screen is misconfigured."
	default:
		return ""
	}
}

// Result is the outcome of one resolution attempt: either Ready with the
// resolved key, or Failed with a kind and the underlying error. Produced
// exactly once per Resolve call and consumed immediately by the controller.
type Result struct {
	Key  models.ArticleKey
	Kind ErrorKind
	Err  error
}

// Ready reports whether the resolution produced a displayable article.
func (r Result) Ready() bool {
	return r.Kind == KindNone
}

func ready(key models.ArticleKey) Result {
	return Result{Key: key}
}

func failed(kind ErrorKind, err error) Result {
	return Result{Kind: kind, Err: err}
}
