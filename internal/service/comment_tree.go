package service

import "Quill/internal/model"

// CommentNode 评论树节点
type CommentNode struct {
	Comment  *model.PostComment
	Depth    int
	Children []*CommentNode
}

// BuildCommentTree 将扁平评论组装为森林。
// 父评论必须在输入中先于子评论出现才会挂载，否则（包括父评论缺失、自引用、成环）提升为根节点。
// 根节点与每个 children 列表都保持输入顺序，节点总数等于输入条数。
func BuildCommentTree(comments []*model.PostComment) []*CommentNode {
	type indexed struct {
		node *CommentNode
		pos  int
	}

	byID := make(map[uint64]indexed, len(comments))
	nodes := make([]*CommentNode, len(comments))
	for i, c := range comments {
		nodes[i] = &CommentNode{Comment: c}
		if _, seen := byID[c.ID]; !seen {
			byID[c.ID] = indexed{node: nodes[i], pos: i}
		}
	}

	roots := make([]*CommentNode, 0)
	for i, n := range nodes {
		parentID := n.Comment.ParentID
		if parentID != 0 {
			if p, ok := byID[parentID]; ok && p.pos < i {
				n.Depth = p.node.Depth + 1
				p.node.Children = append(p.node.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}

// CapCommentDepth 返回新的森林，深度达到 maxDepth 的节点不再有子节点，
// 其后代按先序遍历排在它之后，作为同层兄弟节点。maxDepth < 0 表示不限制。
func CapCommentDepth(roots []*CommentNode, maxDepth int) []*CommentNode {
	if maxDepth < 0 {
		return roots
	}
	return capLevel(roots, 0, maxDepth)
}

func capLevel(nodes []*CommentNode, depth, maxDepth int) []*CommentNode {
	out := make([]*CommentNode, 0, len(nodes))
	for _, n := range nodes {
		if depth < maxDepth {
			out = append(out, &CommentNode{
				Comment:  n.Comment,
				Depth:    depth,
				Children: capLevel(n.Children, depth+1, maxDepth),
			})
			continue
		}
		out = appendFlattened(out, n, depth)
	}
	return out
}

func appendFlattened(out []*CommentNode, n *CommentNode, depth int) []*CommentNode {
	stack := []*CommentNode{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, &CommentNode{Comment: cur.Comment, Depth: depth})
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return out
}

// CountNodes 统计森林中的节点数
func CountNodes(roots []*CommentNode) int {
	count := 0
	stack := append([]*CommentNode(nil), roots...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, cur.Children...)
	}
	return count
}
