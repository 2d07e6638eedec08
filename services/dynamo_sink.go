package services

import (
	"context"
	"fmt"
	"time"

	"pingly_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoSink persists decisions, matches and messages.
//
//	SwipeDecisions: owner (hash), sortKey (range)
//	Matches:        owner (hash), matchId (range)
//	Messages:       matchId (hash), sortKey (range)
type DynamoSink struct {
	Dynamo *DynamoService
}

// SortKey is the range key of a time-ordered item: the zero-padded Unix
// nanoseconds of at, then id. String order equals time order, and items
// written in the same nanosecond stay distinct.
func SortKey(at time.Time, id string) string {
	return fmt.Sprintf("%020d#%s", at.UnixNano(), id)
}

func (s *DynamoSink) RecordDecision(ctx context.Context, d models.SwipeDecision) error {
	d.SortKey = SortKey(d.DecidedAt, d.CandidateID)
	return s.Dynamo.PutItem(ctx, models.SwipeDecisionsTable, d)
}

func (s *DynamoSink) RecordMatch(ctx context.Context, m models.Match) error {
	return s.Dynamo.PutItem(ctx, models.MatchesTable, m)
}

func (s *DynamoSink) RecordUnmatch(ctx context.Context, m models.Match) error {
	key := map[string]types.AttributeValue{
		"owner":   &types.AttributeValueMemberS{Value: m.Owner},
		"matchId": &types.AttributeValueMemberS{Value: m.MatchID},
	}
	return s.Dynamo.DeleteItem(ctx, models.MatchesTable, key)
}

func (s *DynamoSink) RecordMessage(ctx context.Context, msg models.Message) error {
	msg.SortKey = SortKey(msg.CreatedAt, msg.MessageID)
	return s.Dynamo.PutItem(ctx, models.MessagesTable, msg)
}

// LoadMatch returns the persisted match owned by owner.
func (s *DynamoSink) LoadMatch(ctx context.Context, owner, matchID string) (models.Match, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, map[string]types.AttributeValue{
		"owner":   &types.AttributeValueMemberS{Value: owner},
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	})
	if err != nil {
		return models.Match{}, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return models.Match{}, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return match, nil
}

// DecisionHistory returns owner's most recent swipe decisions, newest first.
func (s *DynamoSink) DecisionHistory(ctx context.Context, owner string, limit int32) ([]models.SwipeDecision, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.SwipeDecisionsTable,
		"#owner = :owner",
		map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: owner},
		},
		map[string]string{"#owner": "owner"},
		limit, true)
	if err != nil {
		return nil, err
	}

	var decisions []models.SwipeDecision
	if err := attributevalue.UnmarshalListOfMaps(items, &decisions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swipe decisions: %w", err)
	}
	return decisions, nil
}

// ConversationHistory returns the persisted messages of a conversation, oldest first.
func (s *DynamoSink) ConversationHistory(ctx context.Context, matchID string, limit int32) ([]models.Message, error) {
	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable,
		"matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		},
		nil, limit, false)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return messages, nil
}
