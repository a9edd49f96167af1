package constants

// Post types
const (
	PostTypeText        = "text"
	PostTypeImage       = "image"
	PostTypeVideo       = "video"
	PostTypeArticle     = "article"
	PostTypeAchievement = "achievement"
)

// Connection statuses
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionRejected = "rejected"
)

// Discussion categories
const (
	DiscussionGeneral   = "general"
	DiscussionTeaching  = "teaching"
	DiscussionLearning  = "learning"
	DiscussionCareer    = "career"
	DiscussionResources = "resources"
	DiscussionHelp      = "help"
)

// Teaching modes
const (
	TeachingOnline  = "online"
	TeachingOffline = "offline"
	TeachingBoth    = "both"
)

// Frontend route the profile gate points incomplete accounts to.
const CompleteProfilePath = "/complete-profile"
