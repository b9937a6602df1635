package service

import (
	"sort"

	"inkwell/internal/models"
)

// BuildCommentTree assembles a flat comment list into a threaded tree.
// Replies attach to their parent when the parent is present in the
// input; replies whose parent is missing are promoted to roots rather
// than dropped. Roots are ordered newest first, replies within a
// thread oldest first. ReplyCount on each node counts direct children
// only.
func BuildCommentTree(comments []models.Comment) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(comments))
	order := make([]*models.CommentNode, 0, len(comments))

	for i := range comments {
		node := &models.CommentNode{
			Comment: comments[i],
			Replies: []*models.CommentNode{},
		}
		nodes[node.ID] = node
		order = append(order, node)
	}

	roots := make([]*models.CommentNode, 0, len(order))
	for _, node := range order {
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	for _, node := range order {
		node.ReplyCount = len(node.Replies)
		sort.SliceStable(node.Replies, func(i, j int) bool {
			return node.Replies[i].CreatedAt.Before(node.Replies[j].CreatedAt)
		})
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	return roots
}
