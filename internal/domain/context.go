package domain

import (
	"context"
	"fmt"
)

type ctxUserInfoKey struct{}

const (
	CtxUnknownUserId UserIdentifier = "_SHOP_UNKNOWN_"
)

// ContextUserInfo carries the identity of the request initiator, as confirmed
// by the backend identity endpoint, through the handler chain.
type ContextUserInfo struct {
	Id      UserIdentifier
	IsAdmin bool
}

func (u *ContextUserInfo) String() string {
	return fmt.Sprintf("%s|%t", u.Id, u.IsAdmin)
}

func (u *ContextUserInfo) UserId() string {
	return string(u.Id)
}

func DefaultContextUserInfo() *ContextUserInfo {
	return &ContextUserInfo{
		Id:      CtxUnknownUserId,
		IsAdmin: false,
	}
}

func SetUserInfo(ctx context.Context, info *ContextUserInfo) context.Context {
	return context.WithValue(ctx, ctxUserInfoKey{}, info)
}

func GetUserInfo(ctx context.Context) *ContextUserInfo {
	info, ok := ctx.Value(ctxUserInfoKey{}).(*ContextUserInfo)
	if !ok {
		return DefaultContextUserInfo()
	}
	return info
}
