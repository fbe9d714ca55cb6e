package utils

import (
	"math/rand"
)

var avatarEmojis = []string{"🌱", "🌿", "🍃", "🌾", "🎋", "🎍", "🌲", "🌳", "🐼", "🦊", "🐨", "🐸"}

// RandomAvatar 返回一个随机 emoji，用于没有头像的用户
func RandomAvatar() string {
	return avatarEmojis[rand.Intn(len(avatarEmojis))]
}

// AvatarOrDefault keeps avatar when set.
func AvatarOrDefault(avatar string) string {
	if avatar != "" {
		return avatar
	}
	return RandomAvatar()
}
