package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/skillswap/skillswap/internal/common/httpclient"
	"github.com/skillswap/skillswap/pkg/types"
)

// FetchSkills lists every skill.
func (c *Client) FetchSkills(ctx context.Context) ([]types.Skill, error) {
	body, err := c.http.GetResource(ctx, "/skills", nil, msgFetchSkills)
	if err != nil {
		return nil, err
	}
	var skills []types.Skill
	if err := decodeList(body, "skills", &skills, msgFetchSkills); err != nil {
		return nil, err
	}
	return skills, nil
}

// FetchSkill fetches one skill.
func (c *Client) FetchSkill(ctx context.Context, id int64) (*types.Skill, error) {
	body, err := c.http.GetResource(ctx, idPath("/skills", id), nil, msgFetchSkill)
	if err != nil {
		return nil, err
	}
	var skill types.Skill
	if err := decode(body, &skill, msgFetchSkill); err != nil {
		return nil, err
	}
	return &skill, nil
}

// SearchSkills runs a server side search. Zero fields of q are not sent.
func (c *Client) SearchSkills(ctx context.Context, q types.SearchQuery) ([]types.Skill, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.MaxPrice > 0 {
		params.Set("max_price", strconv.Itoa(q.MaxPrice))
	}
	for _, tag := range q.Tags {
		params.Add("tags", tag)
	}
	body, err := c.http.DoRequest(ctx, httpclient.RequestOptions{
		Method:         http.MethodGet,
		Path:           "/skills/search",
		QueryValues:    params,
		FailureMessage: msgSearchSkills,
	})
	if err != nil {
		return nil, err
	}
	var skills []types.Skill
	if err := decodeList(body, "skills", &skills, msgSearchSkills); err != nil {
		return nil, err
	}
	return skills, nil
}

// FetchSuggestedSkills lists skills the server matched to the user's interests.
func (c *Client) FetchSuggestedSkills(ctx context.Context, userID int64) ([]types.Skill, error) {
	body, err := c.http.GetResource(ctx, idPath("/users", userID, "suggested-skills"), nil, msgFetchSuggested)
	if err != nil {
		return nil, err
	}
	var skills []types.Skill
	if err := decodeList(body, "suggested_skills", &skills, msgFetchSuggested); err != nil {
		return nil, err
	}
	return skills, nil
}

// AddSkill creates a skill owned by userID. When the server only acknowledges
// the creation, the returned skill is built from draft and the new id.
func (c *Client) AddSkill(ctx context.Context, userID int64, draft types.SkillDraft) (*types.Skill, error) {
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	body, err := c.http.CreateResource(ctx, idPath("/users", userID, "skills"), data, msgAddSkill)
	if err != nil {
		return nil, err
	}
	if isResource(body, "id", "name") {
		var skill types.Skill
		if err := decode(body, &skill, msgAddSkill); err != nil {
			return nil, err
		}
		return &skill, nil
	}
	id, _ := ackID(body, "skill_id", "id")
	skill := &types.Skill{
		ID:          id,
		UserID:      userID,
		Name:        draft.Name,
		Category:    draft.Category,
		Description: draft.Description,
		Price:       draft.Price,
		Online:      draft.Online,
		Tags:        draft.Tags,
	}
	if av := draft.Availability; len(av.Days) > 0 || len(av.TimeSlots) > 0 {
		skill.Availability = &av
	}
	return skill, nil
}
