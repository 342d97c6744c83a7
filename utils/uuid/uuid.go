package uuid

import (
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// SnowNode 雪花算法节点，同一进程内生成的 id 单调递增
type SnowNode struct {
	node *snowflake.Node
}

func NewNode(id int64) *SnowNode {
	node, err := snowflake.NewNode(id)
	if err != nil {
		// 节点号超出范围时退回 0 号节点
		node, _ = snowflake.NewNode(0)
	}
	return &SnowNode{node: node}
}

func (s *SnowNode) GenSnowID() int64 {
	return s.node.Generate().Int64()
}

func (s *SnowNode) GenSnowString() string {
	return s.node.Generate().String()
}

var requestNode = NewNode(1)

// GenRequestID 请求id
func GenRequestID() string {
	return requestNode.GenSnowString()
}

// GenSessionID 聚合会话id，对外暴露，不可预测
func GenSessionID() string {
	return uuid.NewString()
}

// IsSessionID 只接受标准格式的 uuid
func IsSessionID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
