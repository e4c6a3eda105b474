package models

import "time"

type Follow struct {
	FollowerID int       // ID подписчика
	FolloweeID int       // ID пользователя, на которого подписались
	Created    time.Time // Дата создания
}

type FollowCounts struct {
	Followers int // Количество подписчиков
	Following int // Количество подписок
}
