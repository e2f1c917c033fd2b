package ipresolver

import (
	"facemark.io/infrastructure/ipresolver/maxmind"
	"facemark.io/infrastructure/ipresolver/types"
)

var IPResolverInstance types.IPResolver = &maxmind.MaxMindIPResolver{}
