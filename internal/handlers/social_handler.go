package handlers

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/feeds"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SocialHandler struct {
	social *services.SocialService
	oauth  *services.RedditOAuth
	ledger *services.Ledger
}

func NewSocialHandler(social *services.SocialService, oauth *services.RedditOAuth, ledger *services.Ledger) *SocialHandler {
	return &SocialHandler{social: social, oauth: oauth, ledger: ledger}
}

func (h *SocialHandler) RedditAuth(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	url, state, err := h.oauth.AuthURL(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.OK(dto.RedditAuthResponse{AuthURL: url, State: state}))
}

func (h *SocialHandler) RedditCallback(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	if err := h.oauth.Callback(c.UserContext(), userID, c.Query("code"), c.Query("state")); err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    dto.RedditStatusResponse{Connected: true},
		Message: "Reddit authentication successful",
	})
}

func (h *SocialHandler) RedditRefresh(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	user, err := h.oauth.Refresh(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "")
	}

	status := dto.RedditStatusResponse{Connected: user.RedditConnected()}
	if user.RedditTokenExpiry != nil {
		status.ExpiresAt = user.RedditTokenExpiry.UTC().Format(time.RFC3339)
	}
	return c.JSON(dto.OK(status))
}

func (h *SocialHandler) RedditDisconnect(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	if err := h.oauth.Disconnect(c.UserContext(), userID); err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    dto.RedditStatusResponse{Connected: false},
		Message: "Reddit disconnected",
	})
}

func (h *SocialHandler) Feed(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	res, err := h.social.Feed(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Failed to fetch feed")
	}

	return c.JSON(dto.OK(dto.FeedResponse{
		Posts:         res.Posts,
		Credits:       res.Reward.Credits,
		CreditReward:  res.Reward.Reward,
		RewardMessage: fmt.Sprintf("Earned %d credits for viewing feed!", res.Reward.Reward),
	}))
}

func (h *SocialHandler) Share(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	var req dto.ShareRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	platform := c.Params("platform")
	res, err := h.social.Share(c.UserContext(), userID, platform, feeds.ShareItem{
		Content:   req.Content,
		Title:     req.Title,
		Subreddit: req.Subreddit,
		URL:       req.URL,
	})
	if err != nil {
		return respondError(c, err, "Failed to share post")
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    rewardResponse(res, platform),
		Message: fmt.Sprintf("Earned %d credits for sharing!", res.Reward),
	})
}

func (h *SocialHandler) Save(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	res, err := h.ledger.Save(c.UserContext(), userID, c.Params("postId"))
	if err != nil {
		return respondError(c, err, "")
	}

	if !res.Applied() {
		return c.JSON(dto.SuccessResponse{
			Success: false,
			Data:    rewardResponse(res, ""),
			Message: "Post already saved",
		})
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    rewardResponse(res, ""),
		Message: fmt.Sprintf("Earned %d credits for saving!", res.Reward),
	})
}

func (h *SocialHandler) Unsave(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	res, err := h.ledger.Unsave(c.UserContext(), userID, c.Params("postId"))
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    rewardResponse(res, ""),
		Message: "Post unsaved successfully",
	})
}

func (h *SocialHandler) Saved(c *fiber.Ctx) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	saved, err := h.ledger.SavedPosts(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "")
	}
	if saved == nil {
		saved = []string{}
	}

	return c.JSON(dto.OK(dto.SavedPostsResponse{SavedPosts: saved}))
}
