package service

import "strings"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// AdminRoleName JWT 中管理员角色的名称
const AdminRoleName = "ADMIN"

// Actor 当前请求的操作者，UserID 为 0 表示匿名
type Actor struct {
	UserID uint64
	Role   Role
}

// Anonymous 匿名操作者
var Anonymous = Actor{Role: RoleMember}

func (a Actor) IsAuthenticated() bool {
	return a.UserID != 0
}

func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.Role == RoleAdmin
}

// NewActor 由鉴权信息构造操作者
func NewActor(userID uint64, roles []string) Actor {
	actor := Actor{UserID: userID, Role: RoleMember}
	if userID == 0 {
		return actor
	}
	for _, r := range roles {
		if strings.EqualFold(r, AdminRoleName) {
			actor.Role = RoleAdmin
			break
		}
	}
	return actor
}
