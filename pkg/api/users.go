package api

import (
	"context"

	"github.com/skillswap/skillswap/pkg/types"
)

// FetchUser fetches a user together with the skills they own.
func (c *Client) FetchUser(ctx context.Context, id int64) (*types.User, error) {
	body, err := c.http.GetResource(ctx, idPath("/users", id), nil, msgFetchUser)
	if err != nil {
		return nil, err
	}
	var user types.User
	if err := decode(body, &user, msgFetchUser); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchUsers lists every user.
func (c *Client) FetchUsers(ctx context.Context) ([]types.User, error) {
	body, err := c.http.GetResource(ctx, "/users", nil, msgFetchUsers)
	if err != nil {
		return nil, err
	}
	var users []types.User
	if err := decodeList(body, "users", &users, msgFetchUsers); err != nil {
		return nil, err
	}
	return users, nil
}

// RegisterUser creates a user. The server acknowledges with the new id; the
// returned user carries that id and the submitted fields. Credits are left at
// zero because only the server knows them: fetch the user to read them.
func (c *Client) RegisterUser(ctx context.Context, reg types.Registration) (*types.User, error) {
	data, err := json.Marshal(reg)
	if err != nil {
		return nil, err
	}
	body, err := c.http.CreateResource(ctx, "/users/register", data, msgRegisterUser)
	if err != nil {
		return nil, err
	}
	if isResource(body, "id", "email") {
		var user types.User
		if err := decode(body, &user, msgRegisterUser); err != nil {
			return nil, err
		}
		return &user, nil
	}
	id, ok := ackID(body, "id", "user_id")
	if !ok {
		return nil, invalidAck(msgRegisterUser)
	}
	return &types.User{
		ID:        id,
		Name:      reg.Name,
		Email:     reg.Email,
		Location:  reg.Location,
		Language:  reg.Language,
		Interests: reg.Interests,
	}, nil
}

// FetchTeacherReviews lists the reviews left for a teacher.
func (c *Client) FetchTeacherReviews(ctx context.Context, teacherID int64) ([]types.Review, error) {
	body, err := c.http.GetResource(ctx, idPath("/users", teacherID, "reviews"), nil, msgFetchReviews)
	if err != nil {
		return nil, err
	}
	var reviews []types.Review
	if err := decodeList(body, "reviews", &reviews, msgFetchReviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
