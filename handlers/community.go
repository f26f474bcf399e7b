package handlers

import (
	"net/http"

	"croppulse/middleware"
	"croppulse/models"
	"croppulse/services/community"
	"croppulse/utils"

	"github.com/gin-gonic/gin"
)

// ListCategoriesHandler lists forum categories.
func ListCategoriesHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.ListCategories(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// CreateCategoryHandler creates a forum category.
func CreateCategoryHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cat models.ForumCategory
		if err := c.ShouldBindJSON(&cat); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := svc.CreateCategory(c.Request.Context(), &cat); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// CreatePostHandler creates a forum post.
func CreatePostHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.ForumPost
		if err := c.ShouldBindJSON(&p); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		p.AuthorID = middleware.AccountID(c)
		created, err := svc.CreatePost(c.Request.Context(), &p)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// GetPostHandler returns one post and counts the view.
func GetPostHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetPost(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// ListPostsHandler lists posts, optionally by category.
func ListPostsHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.GetPage(c)
		posts, total, err := svc.ListPosts(c.Request.Context(), c.Query("category"), page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, posts))
	}
}

// TrendingPostsHandler lists the most engaging recent posts.
func TrendingPostsHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.TrendingPosts(c.Request.Context(), intQuery(c, "limit", 10))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"posts": posts})
	}
}

// LikePostHandler records a like on a post.
func LikePostHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.LikePost(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "liked"})
	}
}

// FlagPostHandler flags a post for moderation.
func FlagPostHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.FlagPost(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "flagged for review"})
	}
}

// PinPostHandler pins or unpins a post.
func PinPostHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pinned := c.DefaultQuery("pinned", "true") == "true"
		if err := svc.PinPost(c.Request.Context(), c.Param("id"), pinned); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"pinned": pinned})
	}
}

// LockPostHandler locks or unlocks a post.
func LockPostHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		locked := c.DefaultQuery("locked", "true") == "true"
		if err := svc.LockPost(c.Request.Context(), c.Param("id"), locked); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"locked": locked})
	}
}

// CreateReplyHandler adds a reply to a post.
func CreateReplyHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rep models.ForumReply
		if err := c.ShouldBindJSON(&rep); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		rep.PostID = c.Param("id")
		rep.AuthorID = middleware.AccountID(c)
		created, err := svc.CreateReply(c.Request.Context(), &rep)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ListRepliesHandler lists a post's replies.
func ListRepliesHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.GetPage(c)
		replies, total, err := svc.ListReplies(c.Request.Context(), c.Param("id"), page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, replies))
	}
}

// LikeReplyHandler records a like on a reply.
func LikeReplyHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.LikeReply(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "liked"})
	}
}

// CommunityStatsHandler summarizes forum engagement.
func CommunityStatsHandler(svc community.CommunityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context(), intQuery(c, "days", 30))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
