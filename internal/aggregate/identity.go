package aggregate

import (
	"builderboard/internal/model"
	"builderboard/internal/sponsor"
	"fmt"
	"strings"
)

// IdentityKey 跨赞助方合并用的建设者标识，优先级：
//  1. talent protocol id
//  2. 去掉首尾空白并转小写的展示名
//  3. 赞助方 + 该赞助方内的 id（无法跨赞助方合并）
//
// 同一条输入在一次会话内必须得到相同的 key
func IdentityKey(u model.LeaderboardUser, sp sponsor.ID) string {
	if id := strings.TrimSpace(u.TalentProtocolID); id != "" {
		return "talent:" + id
	}
	if name := strings.ToLower(strings.TrimSpace(u.Profile.DisplayName)); name != "" {
		return "name:" + name
	}
	return fmt.Sprintf("sponsor:%s:%d", sp, u.ID)
}
