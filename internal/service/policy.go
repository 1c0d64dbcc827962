// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "github.com/inkwell/inkwell-go/internal/store"

// AdminUserID is the fixed identity permitted to mutate posts. The first
// registered account (id 1) is the administrator. There is no role table;
// renumbering or deleting user 1 breaks admin access. Known limitation.
const AdminUserID int64 = 1

// CanMutatePosts reports whether the actor may create, edit, or delete
// posts. A nil actor is anonymous.
func CanMutatePosts(actor *store.User) bool {
	return actor != nil && actor.ID == AdminUserID
}

// CanComment reports whether the actor may comment on posts. Any
// authenticated user may comment.
func CanComment(actor *store.User) bool {
	return actor != nil
}

// CanSubmitContact reports whether the actor may submit the contact form.
func CanSubmitContact(actor *store.User) bool {
	return actor != nil
}
