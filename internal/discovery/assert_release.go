//go:build !discoverydebug

package discovery

func assertWellFormed(Item) {}
