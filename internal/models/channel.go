package models

// Channel identifies one of the recommendation generation strategies.
// The set is closed: a Recommendation row with any other value would be
// unreachable by every query path, so validity is checked at the edges.
type Channel string

const (
	ChannelAIGenerated  Channel = "ai_generated"
	ChannelTrending     Channel = "trending"
	ChannelSimilarUsers Channel = "similar_users"
	ChannelSeasonal     Channel = "seasonal"
)

// AllChannels returns the four known channels in a fixed order.
func AllChannels() []Channel {
	return []Channel{ChannelAIGenerated, ChannelTrending, ChannelSimilarUsers, ChannelSeasonal}
}

// Valid reports whether c is one of the four known channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelAIGenerated, ChannelTrending, ChannelSimilarUsers, ChannelSeasonal:
		return true
	}
	return false
}

func (c Channel) String() string {
	return string(c)
}
