package constants

// Pub/Sub providers accepted by the pubsub.provider config key.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Content event types.
const (
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
	EventCommentCreated = "comment.created"
)

// Paging of GET /posts.
const (
	DefaultPostPageLimit = 100
	MaxPostPageLimit     = 100
)

// TokenTypeBearer is returned with every access token.
const TokenTypeBearer = "bearer"

// EnvDevelop disables Pub/Sub push authentication on the event worker.
const EnvDevelop = "develop"
