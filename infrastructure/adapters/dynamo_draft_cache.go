package adapters

import (
	"context"
	"time"

	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/config"
	"github.com/Amdaxx/podcast/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoDraftItem struct {
	DraftID       string  `dynamodbav:"draft_id"`
	AuthorID      string  `dynamodbav:"author_id"`
	AuthorName    string  `dynamodbav:"author_name"`
	Title         string  `dynamodbav:"title"`
	Description   string  `dynamodbav:"description"`
	VoiceType     string  `dynamodbav:"voice_type"`
	VoicePrompt   string  `dynamodbav:"voice_prompt"`
	ImagePrompt   string  `dynamodbav:"image_prompt"`
	AudioURL      string  `dynamodbav:"audio_url"`
	AudioKey      string  `dynamodbav:"audio_key"`
	AudioDuration float64 `dynamodbav:"audio_duration"`
	ImageURL      string  `dynamodbav:"image_url"`
	ImageKey      string  `dynamodbav:"image_key"`
	AudioSeq      uint64  `dynamodbav:"audio_seq"`
	ImageSeq      uint64  `dynamodbav:"image_seq"`
	Submitting    bool    `dynamodbav:"submitting"`
	CreatedAt     int64   `dynamodbav:"created_at"`
	TTL           int64   `dynamodbav:"ttl"`
}

type dynamoDraftCache struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoDraftCache(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.DraftCachePort {
	return &dynamoDraftCache{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (c *dynamoDraftCache) Save(ctx context.Context, draft domain.Draft) error {
	item := dynamoDraftItem{
		DraftID:       draft.ID,
		AuthorID:      draft.AuthorID,
		AuthorName:    draft.AuthorName,
		Title:         draft.Title,
		Description:   draft.Description,
		VoiceType:     string(draft.VoiceType),
		VoicePrompt:   draft.VoicePrompt,
		ImagePrompt:   draft.ImagePrompt,
		AudioURL:      draft.AudioURL,
		AudioKey:      draft.AudioKey,
		AudioDuration: draft.AudioDuration,
		ImageURL:      draft.ImageURL,
		ImageKey:      draft.ImageKey,
		AudioSeq:      draft.AudioSeq,
		ImageSeq:      draft.ImageSeq,
		Submitting:    draft.Submitting,
		CreatedAt:     draft.CreatedAt.Unix(),
		TTL:           time.Now().Add(time.Duration(c.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to marshal draft item", map[string]interface{}{
			"draftID": draft.ID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.dynamoConfig.TableName),
	}

	if _, err = c.dynamoSvc.PutItemWithContext(ctx, input); err != nil {
		c.logger.ErrorWithFields(err, "Failed to save draft item", map[string]interface{}{
			"draftID": draft.ID,
		})
		return err
	}

	return nil
}

func (c *dynamoDraftCache) Get(ctx context.Context, id string) (*domain.Draft, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(c.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"draft_id": {S: aws.String(id)},
		},
	}

	out, err := c.dynamoSvc.GetItemWithContext(ctx, input)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to read draft item", map[string]interface{}{
			"draftID": id,
		})
		return nil, err
	}
	if out.Item == nil {
		return nil, domain.ErrDraftNotFound
	}

	var item dynamoDraftItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		c.logger.ErrorWithFields(err, "Failed to unmarshal draft item", map[string]interface{}{
			"draftID": id,
		})
		return nil, err
	}

	draft := domain.Draft{
		ID:            item.DraftID,
		AuthorID:      item.AuthorID,
		AuthorName:    item.AuthorName,
		Title:         item.Title,
		Description:   item.Description,
		VoiceType:     domain.VoiceType(item.VoiceType),
		VoicePrompt:   item.VoicePrompt,
		ImagePrompt:   item.ImagePrompt,
		AudioURL:      item.AudioURL,
		AudioKey:      item.AudioKey,
		AudioDuration: item.AudioDuration,
		ImageURL:      item.ImageURL,
		ImageKey:      item.ImageKey,
		AudioSeq:      item.AudioSeq,
		ImageSeq:      item.ImageSeq,
		Submitting:    item.Submitting,
		CreatedAt:     time.Unix(item.CreatedAt, 0).UTC(),
	}
	return &draft, nil
}

func (c *dynamoDraftCache) Delete(ctx context.Context, id string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(c.dynamoConfig.TableName),
		Key: map[string]*dynamodb.AttributeValue{
			"draft_id": {S: aws.String(id)},
		},
	}

	if _, err := c.dynamoSvc.DeleteItemWithContext(ctx, input); err != nil {
		c.logger.ErrorWithFields(err, "Failed to delete draft item", map[string]interface{}{
			"draftID": id,
		})
		return err
	}
	return nil
}
