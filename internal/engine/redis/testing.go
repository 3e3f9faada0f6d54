package redis

import "github.com/redis/rueidis"

// NewDriverForTest wraps an existing client, typically a rueidis mock.
func NewDriverForTest(c rueidis.Client) *Driver {
	return &Driver{client: c}
}
