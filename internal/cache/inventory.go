package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	MemberKeyPrefix = "member:%d"
	PostKeyPrefix   = "post:%d"
)

const (
	MemberTTL = 5 * time.Minute
	PostTTL   = 30 * time.Minute
)

func MemberKey(memberID uint) string {
	return fmt.Sprintf(MemberKeyPrefix, memberID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateMember(ctx context.Context, memberID uint) {
	Invalidate(ctx, MemberKey(memberID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
