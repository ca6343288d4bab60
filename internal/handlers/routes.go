package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes wires every API route onto the router. Handlers that need
// a verified identity go through Authed, so the requirement is readable at
// the call site.
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/refresh-token", h.RefreshToken)

		users.POST("/logout", h.Authed(h.Logout))
		users.GET("/current-user", h.Authed(h.Me))
		users.PATCH("/update-account", h.Authed(h.UpdateAccount))
		users.POST("/change-password", h.Authed(h.ChangePassword))
		users.GET("/history", h.Authed(h.GetWatchHistory))
		users.GET("/c/:username", h.Authed(h.GetChannelProfile))
	}

	videos := api.Group("/videos")
	{
		videos.GET("", h.Authed(h.ListVideos))
		videos.POST("", h.Authed(h.PublishVideo))
		videos.GET("/:videoId", h.Authed(h.GetVideo))
		videos.GET("/:videoId/watch", h.Authed(h.WatchVideo))
		videos.PATCH("/:videoId", h.Authed(h.UpdateVideo))
		videos.DELETE("/:videoId", h.Authed(h.DeleteVideo))
		videos.PATCH("/toggle/publish/:videoId", h.Authed(h.TogglePublishStatus))
	}

	tweets := api.Group("/tweets")
	{
		tweets.POST("", h.Authed(h.CreateTweet))
		tweets.GET("/user/:userId", h.Authed(h.GetUserTweets))
		tweets.PATCH("/:tweetId", h.Authed(h.UpdateTweet))
		tweets.DELETE("/:tweetId", h.Authed(h.DeleteTweet))
	}

	comments := api.Group("/comments")
	{
		comments.GET("/v/:videoId", h.Authed(h.GetVideoComments))
		comments.POST("/v/:videoId", h.Authed(h.AddVideoComment))
		comments.GET("/t/:tweetId", h.Authed(h.GetTweetComments))
		comments.POST("/t/:tweetId", h.Authed(h.AddTweetComment))
		comments.PATCH("/c/:commentId", h.Authed(h.UpdateComment))
		comments.DELETE("/c/:commentId", h.Authed(h.DeleteComment))
		comments.POST("/r/:commentId", h.Authed(h.AddReply))
		comments.GET("/r/:commentId", h.Authed(h.GetCommentReplies))
		comments.DELETE("/r/:commentId/:replyId", h.Authed(h.DeleteReply))
	}

	likes := api.Group("/likes")
	{
		likes.POST("/toggle/v/:videoId", h.Authed(h.ToggleVideoLike))
		likes.POST("/toggle/c/:commentId", h.Authed(h.ToggleCommentLike))
		likes.POST("/toggle/t/:tweetId", h.Authed(h.ToggleTweetLike))
		likes.GET("/videos", h.Authed(h.GetLikedVideos))
	}

	playlists := api.Group("/playlists")
	{
		playlists.POST("", h.Authed(h.CreatePlaylist))
		playlists.GET("/user/:userId", h.Authed(h.GetUserPlaylists))
		playlists.GET("/:playlistId", h.Authed(h.GetPlaylist))
		playlists.PATCH("/:playlistId", h.Authed(h.UpdatePlaylist))
		playlists.DELETE("/:playlistId", h.Authed(h.DeletePlaylist))
		playlists.PATCH("/add/:videoId/:playlistId", h.Authed(h.AddVideoToPlaylist))
		playlists.PATCH("/remove/:videoId/:playlistId", h.Authed(h.RemoveVideoFromPlaylist))
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("/c/:channelId", h.Authed(h.ToggleSubscription))
		subscriptions.GET("/c/:channelId", h.Authed(h.GetSubscribedChannels))
		subscriptions.GET("/u/:subscriberId", h.Authed(h.GetChannelSubscribers))
	}
}
