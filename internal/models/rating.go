package models

import "math"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is the running aggregate kept on every ratable row
type Rating struct {
	Sum   int `gorm:"column:rating_sum;not null;default:0" json:"rating_sum"`
	Count int `gorm:"column:rating_count;not null;default:0" json:"rating_count"`
}

// Average is sum/count rounded half to even at one decimal, 0 when nothing was rated yet
func (r Rating) Average() float64 {
	return AverageRating(r.Sum, r.Count)
}

func AverageRating(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.RoundToEven(float64(sum)/float64(count)*10) / 10
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

type RateRequest struct {
	PostID    int `json:"post_id"`
	CommentID int `json:"comment_id"`
	Rating    int `json:"rating"`
}
