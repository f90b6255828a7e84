package handlers

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/feeds"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/services"
	"github.com/gofiber/fiber/v2"
)

// RedditHandler serves the public listing proxy and the per-post rewards.
type RedditHandler struct {
	listing feeds.Lister
	ledger  *services.Ledger
}

func NewRedditHandler(listing feeds.Lister, ledger *services.Ledger) *RedditHandler {
	return &RedditHandler{listing: listing, ledger: ledger}
}

func (h *RedditHandler) Posts(c *fiber.Ctx) error {
	opts := feeds.ListingOptions{
		Sort:  c.Query("sort", "hot"),
		Limit: c.QueryInt("limit", feeds.DefaultListingLimit),
	}

	posts, err := h.listing.Listing(c.UserContext(), opts)
	if err != nil {
		return respondError(c, err, "Failed to fetch Reddit posts")
	}

	return c.JSON(dto.OK(posts))
}

func (h *RedditHandler) Share(c *fiber.Ctx) error {
	return h.award(c, services.ActionShare, "sharing")
}

func (h *RedditHandler) View(c *fiber.Ctx) error {
	return h.award(c, services.ActionView, "viewing")
}

func (h *RedditHandler) award(c *fiber.Ctx, action services.Action, verb string) error {
	userID, ok, err := currentUser(c)
	if !ok {
		return err
	}

	res, err := h.ledger.AwardPost(c.UserContext(), userID, action, c.Params("postId"))
	if err != nil {
		return respondError(c, err, "")
	}

	return c.JSON(dto.SuccessResponse{
		Success: true,
		Data:    rewardResponse(res, feeds.PlatformReddit),
		Message: fmt.Sprintf("Earned %d credits for %s!", res.Reward, verb),
	})
}

func rewardResponse(res *services.Result, platform string) dto.RewardResponse {
	return dto.RewardResponse{
		PostID:       res.PostID,
		Platform:     platform,
		Outcome:      res.Outcome,
		CreditReward: res.Reward,
		Credits:      res.Credits,
	}
}
