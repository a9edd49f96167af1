package database

import (
	"log"

	"gorm.io/gorm"

	ReviewModel "teecha_backend/internals/features/directory/reviews/model"
	ConnectionModel "teecha_backend/internals/features/social/connections/model"
	DiscussionModel "teecha_backend/internals/features/social/discussions/model"
	MessageModel "teecha_backend/internals/features/social/messages/model"
	PostModel "teecha_backend/internals/features/social/posts/model"
	AuthModel "teecha_backend/internals/features/users/auth/model"
	ProfileModel "teecha_backend/internals/features/users/profiles/model"
	UserModel "teecha_backend/internals/features/users/user/model"
)

// Models in dependency order (users first).
func Models() []any {
	return []any{
		&UserModel.UserModel{},
		&AuthModel.TokenBlacklist{},
		&ProfileModel.TeacherProfileModel{},
		&ProfileModel.StudentProfileModel{},
		&ProfileModel.SchoolProfileModel{},
		&PostModel.PostModel{},
		&PostModel.LikeModel{},
		&PostModel.CommentModel{},
		&ConnectionModel.ConnectionModel{},
		&MessageModel.MessageModel{},
		&ReviewModel.ReviewModel{},
		&DiscussionModel.DiscussionModel{},
		&DiscussionModel.DiscussionCommentModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto extension: %v", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("✅ AutoMigrate done")
	return nil
}
