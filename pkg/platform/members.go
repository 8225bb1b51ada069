package platform

import (
	"context"
)

// MemberInfo returns the currently logged-in member's profile.  The platform
// answers 401/403 when no member session exists; callers surface that as a
// plain error.
func (c *Client) MemberInfo(ctx context.Context) (*Member, error) {
	var env struct {
		Member struct {
			ID         string `json:"id"`
			LoginEmail string `json:"loginEmail"`
			Profile    struct {
				Nickname  string `json:"nickname"`
				FirstName string `json:"firstName"`
				LastName  string `json:"lastName"`
			} `json:"profile"`
		} `json:"member"`
	}
	if err := c.get(ctx, "/members/v1/members/my", nil, &env); err != nil {
		return nil, err
	}
	return &Member{
		ID:        env.Member.ID,
		Email:     env.Member.LoginEmail,
		Nickname:  env.Member.Profile.Nickname,
		FirstName: env.Member.Profile.FirstName,
		LastName:  env.Member.Profile.LastName,
	}, nil
}
