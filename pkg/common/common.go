package common

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

// ALL is the filter value meaning no constraint
const ALL = "all"

var (
	node     *snowflake.Node
	nodeOnce sync.Once
)

func idNode() *snowflake.Node {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return node
}

// UUIDint64 returns a unique, time ordered int64 id
func UUIDint64() int64 {
	return idNode().Generate().Int64()
}

// RandomHex returns n random bytes hex encoded
func RandomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		zap.L().Error("random read failed", zap.Error(err))
		return ""
	}
	return hex.EncodeToString(b)
}

// IsEmptyOrAll reports whether a filter value means "no constraint"
func IsEmptyOrAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, ALL)
}

// FileExists reports whether path exists and is not a directory
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// If returns a when cond is true, b otherwise
func If[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
