package gatewaykit

import "github.com/discordpkg/gatewaykit/snowflake"

// DeriveShardID returns the shard receiving events for the given guild:
//
//	shard_id = (guild_id >> 22) % num_shards
//
// Direct messages are always sent to shard 0. A shard count of 0 is treated as 1.
func DeriveShardID(guildID snowflake.Snowflake, totalNumberOfShards uint) ShardID {
	if totalNumberOfShards == 0 {
		return 0
	}
	createdUnix := guildID.Raw() >> 22
	groups := uint64(totalNumberOfShards)
	return ShardID(createdUnix % groups)
}
