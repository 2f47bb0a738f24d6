package config

import (
	"fmt"
	"os"
	"strconv"
)

type DynamoConfig struct {
	TableName  string
	TtlMinutes int
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("DYNAMO_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("DYNAMO_TABLE_NAME must be set")
	}

	ttl := os.Getenv("DRAFT_TTL_MINUTES")
	if ttl == "" {
		return nil, fmt.Errorf("DRAFT_TTL_MINUTES must be set")
	}
	ttlMinutes, err := strconv.Atoi(ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse draft ttl minutes")
	}

	return &DynamoConfig{
		TableName:  tableName,
		TtlMinutes: ttlMinutes,
	}, nil
}
