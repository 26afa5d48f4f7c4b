package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"envlogs/internal/model"
	"envlogs/internal/slack"
	slackMocks "envlogs/internal/slack/mocks"
	znMocks "envlogs/internal/zeronet/mocks"
)

func TestLookupService_Lookup(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		term       string
		setupMocks func(dir *znMocks.MockDirectory, notifier *slackMocks.MockNotifier)
		wantPosted bool
		wantEnvs   int
		wantErr    error
	}{
		{
			name: "empty term",
			term: "",
			setupMocks: func(dir *znMocks.MockDirectory, notifier *slackMocks.MockNotifier) {
			},
			wantErr: ErrTermRequired,
		},
		{
			name: "no results",
			term: "ghost",
			setupMocks: func(dir *znMocks.MockDirectory, notifier *slackMocks.MockNotifier) {
				dir.On("SearchAll", ctx, "ghost").Return(nil)
			},
			wantPosted: false,
			wantEnvs:   0,
		},
		{
			name: "results posted with deployments",
			term: "prod",
			setupMocks: func(dir *znMocks.MockDirectory, notifier *slackMocks.MockNotifier) {
				envs := []model.Environment{
					{ID: "env-1", Name: "prod-a", Region: "us-east1"},
				}
				dir.On("SearchAll", ctx, "prod").Return(envs)

				client := &znMocks.MockClient{}
				client.On("ListDeployments", ctx, "env-1").Return([]model.Deployment{
					{ID: "dep-1", Name: "blue", State: "Primary"},
				}, nil)
				dir.On("ClientFor", "us-east1").Return(client, true)

				notifier.On("Post", ctx, mock.MatchedBy(func(msg slack.Message) bool {
					return msg.Channel == "C123" && len(msg.Blocks) == 3
				})).Return(nil)
			},
			wantPosted: true,
			wantEnvs:   1,
		},
		{
			name: "deployment errors still post",
			term: "prod",
			setupMocks: func(dir *znMocks.MockDirectory, notifier *slackMocks.MockNotifier) {
				envs := []model.Environment{
					{ID: "env-1", Name: "prod-a", Region: "us-east1"},
					{ID: "env-2", Name: "prod-b", Region: "unkeyed-region"},
				}
				dir.On("SearchAll", ctx, "prod").Return(envs)

				client := &znMocks.MockClient{}
				client.On("ListDeployments", ctx, "env-1").Return(nil, errors.New("api down"))
				dir.On("ClientFor", "us-east1").Return(client, true)
				dir.On("ClientFor", "unkeyed-region").Return(nil, false)

				notifier.On("Post", ctx, mock.MatchedBy(func(msg slack.Message) bool {
					// header + 2x (section + error section)
					return len(msg.Blocks) == 5
				})).Return(nil)
			},
			wantPosted: true,
			wantEnvs:   2,
		},
		{
			name: "webhook not configured",
			term: "prod",
			setupMocks: func(dir *znMocks.MockDirectory, notifier *slackMocks.MockNotifier) {
				dir.On("SearchAll", ctx, "prod").Return([]model.Environment{
					{ID: "env-1", Name: "prod-a", Region: "us-east1"},
				})
				client := &znMocks.MockClient{}
				client.On("ListDeployments", ctx, "env-1").Return([]model.Deployment{}, nil)
				dir.On("ClientFor", "us-east1").Return(client, true)

				notifier.On("Post", ctx, mock.Anything).Return(slack.ErrWebhookNotConfigured)
			},
			wantErr: slack.ErrWebhookNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &znMocks.MockDirectory{}
			notifier := &slackMocks.MockNotifier{}
			tt.setupMocks(dir, notifier)

			svc := NewLookupService(dir, nil, notifier, "C123")

			res, err := svc.Lookup(ctx, tt.term)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPosted, res.Posted)
			assert.Len(t, res.Environments, tt.wantEnvs)
			dir.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}
