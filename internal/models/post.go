package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommunityPost is display-only feed data, passed through to the dashboard
// without derivation.
type CommunityPost struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID     primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName   string             `bson:"author_name" json:"author_name"`
	Content      string             `bson:"content" json:"content"`
	LikeCount    int                `bson:"like_count" json:"like_count"`
	CommentCount int                `bson:"comment_count" json:"comment_count"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
