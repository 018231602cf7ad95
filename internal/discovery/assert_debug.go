//go:build discoverydebug

package discovery

import "fmt"

func assertWellFormed(item Item) {
	panic(fmt.Sprintf("discovery: item without identity (kind=%s)", item.Kind))
}
