package utils

import (
	"fmt"
	"sync"
	"time"
)

// 布局 id：41 位毫秒时间 | 10 位节点 | 12 位序号
const (
	idEpoch int64 = 1767225600000 // 2026-01-01 UTC

	nodeBits = 10
	seqBits  = 12

	maxNodeID = 1<<nodeBits - 1
	maxSeq    = 1<<seqBits - 1
)

type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastMs int64
	seq    int64
	now    func() int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id out of range [0,%d]: %d", maxNodeID, nodeID)
	}
	return &Snowflake{nodeID: nodeID, now: func() int64 { return time.Now().UnixMilli() }}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now()
	// 时钟回拨时沿用上一毫秒
	if ms < s.lastMs {
		ms = s.lastMs
	}
	if ms == s.lastMs {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			for ms <= s.lastMs {
				ms = s.now()
			}
		}
	} else {
		s.seq = 0
	}
	s.lastMs = ms
	return (ms-idEpoch)<<(nodeBits+seqBits) | s.nodeID<<seqBits | s.seq
}

// SplitID 拆出生成时间和节点，排查问题时用
func SplitID(id int64) (time.Time, int64) {
	ms := id>>(nodeBits+seqBits) + idEpoch
	node := id >> seqBits & maxNodeID
	return time.UnixMilli(ms), node
}

var (
	idGenMu sync.Mutex
	idGen   *Snowflake
)

// InitSnowflake 设置进程级生成器的节点号，多实例部署时每个实例配置不同的 node_id。
func InitSnowflake(nodeID int64) error {
	g, err := NewSnowflake(nodeID)
	if err != nil {
		return err
	}
	idGenMu.Lock()
	idGen = g
	idGenMu.Unlock()
	return nil
}

// NextSnowflakeID 未初始化时使用节点 0。
func NextSnowflakeID() (int64, error) {
	idGenMu.Lock()
	if idGen == nil {
		idGen, _ = NewSnowflake(0)
	}
	g := idGen
	idGenMu.Unlock()
	return g.NextID(), nil
}
