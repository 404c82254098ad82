package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"

	"novelhub/internal/model/auth"
	"novelhub/internal/model/novel"
	"novelhub/internal/repository"
)

func mustCreateUser(ctx context.Context, st *Store, username string) *auth.User {
	u := &auth.User{Username: username, Nickname: username, Password: "x"}
	So(st.Users().Create(ctx, u), ShouldBeNil)
	So(u.UID, ShouldBeGreaterThan, 0)
	return u
}

func mustCreateNovel(ctx context.Context, st *Store, owner int64, title, category string) *novel.Novel {
	n := &novel.Novel{UserUID: owner, Title: title, Content: "content of " + title, Category: category}
	So(st.Novels().Create(ctx, n), ShouldBeNil)
	So(n.UID, ShouldBeGreaterThan, 0)
	return n
}

func uids(novels []*novel.Novel) []int64 {
	out := make([]int64, len(novels))
	for i, n := range novels {
		out[i] = n.UID
	}
	return out
}

func TestUserRepo(t *testing.T) {
	Convey("UserRepo", t, func() {
		ctx := context.Background()
		st, err := OpenInMemory()
		So(err, ShouldBeNil)
		Reset(func() { _ = st.Close(ctx) })

		u := mustCreateUser(ctx, st, "alice")

		Convey("按 uid 和用户名查询", func() {
			got, err := st.Users().FindByUID(ctx, u.UID)
			So(err, ShouldBeNil)
			So(got.Username, ShouldEqual, "alice")

			got, err = st.Users().FindByUsername(ctx, "alice")
			So(err, ShouldBeNil)
			So(got.UID, ShouldEqual, u.UID)
		})

		Convey("不存在返回 ErrNotFound", func() {
			_, err := st.Users().FindByUID(ctx, u.UID+100)
			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("用户名重复返回 ErrDuplicate", func() {
			err := st.Users().Create(ctx, &auth.User{Username: "alice", Nickname: "a2", Password: "x"})
			So(err, ShouldEqual, repository.ErrDuplicate)
		})

		Convey("批量查询忽略不存在的 uid", func() {
			bob := mustCreateUser(ctx, st, "bob")
			got, err := st.Users().FindByUIDs(ctx, []int64{u.UID, bob.UID, 9999})
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 2)
			So(got[bob.UID].Username, ShouldEqual, "bob")
		})
	})
}

func TestNovelRepo_ListAndCount(t *testing.T) {
	Convey("NovelRepo 列表与统计", t, func() {
		ctx := context.Background()
		st, err := OpenInMemory()
		So(err, ShouldBeNil)
		Reset(func() { _ = st.Close(ctx) })

		alice := mustCreateUser(ctx, st, "alice")
		bob := mustCreateUser(ctx, st, "bob")

		n1 := mustCreateNovel(ctx, st, alice.UID, "Dragon Tale", "fantasy")
		n2 := mustCreateNovel(ctx, st, alice.UID, "Space Opera", "scifi")
		n3 := mustCreateNovel(ctx, st, bob.UID, "dragon rider", "fantasy")
		n4 := mustCreateNovel(ctx, st, bob.UID, "100%_pure", "romance")

		Convey("uid 单调递增", func() {
			So(n1.UID, ShouldBeLessThan, n2.UID)
			So(n2.UID, ShouldBeLessThan, n3.UID)
			So(n3.UID, ShouldBeLessThan, n4.UID)
		})

		Convey("最新排序为 uid 倒序", func() {
			list, err := st.Novels().List(ctx, novel.Filter{}, novel.OrderLatest, 0, 10)
			So(err, ShouldBeNil)
			So(uids(list), ShouldResemble, []int64{n4.UID, n3.UID, n2.UID, n1.UID})
		})

		Convey("热门排序按浏览量倒序，相同浏览量 uid 大的在前", func() {
			_, err := st.Novels().IncrementViews(ctx, n1.UID)
			So(err, ShouldBeNil)
			_, err = st.Novels().IncrementViews(ctx, n3.UID)
			So(err, ShouldBeNil)

			list, err := st.Novels().List(ctx, novel.Filter{}, novel.OrderPopular, 0, 10)
			So(err, ShouldBeNil)
			So(uids(list), ShouldResemble, []int64{n3.UID, n1.UID, n4.UID, n2.UID})

			for i := 1; i < len(list); i++ {
				prev, cur := list[i-1], list[i]
				So(prev.Views >= cur.Views, ShouldBeTrue)
				if prev.Views == cur.Views {
					So(prev.UID, ShouldBeGreaterThan, cur.UID)
				}
			}
		})

		Convey("分页使用 offset/limit", func() {
			page1, err := st.Novels().List(ctx, novel.Filter{}, novel.OrderLatest, 0, 3)
			So(err, ShouldBeNil)
			page2, err := st.Novels().List(ctx, novel.Filter{}, novel.OrderLatest, 3, 3)
			So(err, ShouldBeNil)
			So(len(page1), ShouldEqual, 3)
			So(uids(page2), ShouldResemble, []int64{n1.UID})
		})

		Convey("分类过滤为 uid 正序", func() {
			filter := novel.Filter{Category: "fantasy"}
			list, err := st.Novels().List(ctx, filter, novel.OrderUIDAsc, 0, 10)
			So(err, ShouldBeNil)
			So(uids(list), ShouldResemble, []int64{n1.UID, n3.UID})

			total, err := st.Novels().Count(ctx, filter)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 2)
		})

		Convey("标题搜索不区分大小写", func() {
			filter := novel.Filter{TitleContains: "DRAGON"}
			list, err := st.Novels().List(ctx, filter, novel.OrderLatest, 0, 10)
			So(err, ShouldBeNil)
			So(uids(list), ShouldResemble, []int64{n3.UID, n1.UID})

			total, err := st.Novels().Count(ctx, filter)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 2)
		})

		Convey("搜索词中的通配符按字面匹配", func() {
			total, err := st.Novels().Count(ctx, novel.Filter{TitleContains: "%_"})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 1)

			total, err = st.Novels().Count(ctx, novel.Filter{TitleContains: "_"})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 1)
		})

		Convey("作者与点赞过滤", func() {
			total, err := st.Novels().Count(ctx, novel.Filter{OwnerUID: bob.UID})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 2)

			_, err = st.Likes().Toggle(ctx, alice.UID, n3.UID)
			So(err, ShouldBeNil)
			_, err = st.Likes().Toggle(ctx, alice.UID, n4.UID)
			So(err, ShouldBeNil)

			list, err := st.Novels().List(ctx, novel.Filter{LikedByUID: alice.UID}, novel.OrderLatest, 0, 10)
			So(err, ShouldBeNil)
			So(uids(list), ShouldResemble, []int64{n4.UID, n3.UID})
		})

		Convey("浏览量求和", func() {
			for i := 0; i < 3; i++ {
				_, err := st.Novels().IncrementViews(ctx, n1.UID)
				So(err, ShouldBeNil)
			}
			_, err := st.Novels().IncrementViews(ctx, n2.UID)
			So(err, ShouldBeNil)

			sum, err := st.Novels().SumViews(ctx, alice.UID)
			So(err, ShouldBeNil)
			So(sum, ShouldEqual, 4)

			sum, err = st.Novels().SumViews(ctx, 9999)
			So(err, ShouldBeNil)
			So(sum, ShouldEqual, 0)
		})
	})
}

func TestNovelRepo_IncrementViews(t *testing.T) {
	Convey("NovelRepo.IncrementViews", t, func() {
		ctx := context.Background()
		st, err := OpenInMemory()
		So(err, ShouldBeNil)
		Reset(func() { _ = st.Close(ctx) })

		owner := mustCreateUser(ctx, st, "owner")
		n := mustCreateNovel(ctx, st, owner.UID, "T", "fantasy")

		Convey("每次调用加一并返回新值", func() {
			got, err := st.Novels().IncrementViews(ctx, n.UID)
			So(err, ShouldBeNil)
			So(got.Views, ShouldEqual, 1)

			got, err = st.Novels().IncrementViews(ctx, n.UID)
			So(err, ShouldBeNil)
			So(got.Views, ShouldEqual, 2)
		})

		Convey("并发调用不丢失更新", func() {
			const workers = 20
			var wg sync.WaitGroup
			errs := make(chan error, workers)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := st.Novels().IncrementViews(ctx, n.UID); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)
			So(len(errs), ShouldEqual, 0)

			got, err := st.Novels().FindByUID(ctx, n.UID)
			So(err, ShouldBeNil)
			So(got.Views, ShouldEqual, workers)
		})

		Convey("不存在的小说返回 ErrNotFound", func() {
			_, err := st.Novels().IncrementViews(ctx, n.UID+1)
			So(err, ShouldEqual, repository.ErrNotFound)
		})
	})
}

func TestLikeRepo(t *testing.T) {
	Convey("LikeRepo", t, func() {
		ctx := context.Background()
		st, err := OpenInMemory()
		So(err, ShouldBeNil)
		Reset(func() { _ = st.Close(ctx) })

		owner := mustCreateUser(ctx, st, "owner")
		liker := mustCreateUser(ctx, st, "liker")
		n := mustCreateNovel(ctx, st, owner.UID, "T", "fantasy")

		countRows := func() int64 {
			var c int64
			So(st.DB().Model(&novel.Like{}).Where("user_uid = ? AND novel_uid = ?", liker.UID, n.UID).Count(&c).Error, ShouldBeNil)
			return c
		}

		Convey("切换两次回到原状态", func() {
			liked, err := st.Likes().Toggle(ctx, liker.UID, n.UID)
			So(err, ShouldBeNil)
			So(liked, ShouldBeTrue)
			So(countRows(), ShouldEqual, 1)

			liked, err = st.Likes().Toggle(ctx, liker.UID, n.UID)
			So(err, ShouldBeNil)
			So(liked, ShouldBeFalse)
			So(countRows(), ShouldEqual, 0)
		})

		Convey("并发切换不会产生重复记录", func() {
			const workers = 10
			var wg sync.WaitGroup
			errs := make(chan error, workers)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := st.Likes().Toggle(ctx, liker.UID, n.UID); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)
			So(len(errs), ShouldEqual, 0)

			// 偶数次切换后回到未点赞
			So(countRows(), ShouldEqual, 0)
		})

		Convey("插入遇到死锁时整体重试", func() {
			failures := 0
			err := st.DB().Callback().Create().Before("gorm:create").Register("test:deadlock", func(db *gorm.DB) {
				if failures < 2 {
					failures++
					_ = db.AddError(&mysql.MySQLError{Number: mysqlDeadlock, Message: "Deadlock found when trying to get lock"})
				}
			})
			So(err, ShouldBeNil)

			liked, err := st.Likes().Toggle(ctx, liker.UID, n.UID)
			So(err, ShouldBeNil)
			So(liked, ShouldBeTrue)
			So(failures, ShouldEqual, 2)
			So(countRows(), ShouldEqual, 1)
		})

		Convey("死锁持续出现时返回最后一次错误", func() {
			err := st.DB().Callback().Create().Before("gorm:create").Register("test:deadlock", func(db *gorm.DB) {
				_ = db.AddError(&mysql.MySQLError{Number: mysqlLockWaitTimeout, Message: "Lock wait timeout exceeded"})
			})
			So(err, ShouldBeNil)

			_, err = st.Likes().Toggle(ctx, liker.UID, n.UID)
			var myErr *mysql.MySQLError
			So(errors.As(err, &myErr), ShouldBeTrue)
			So(myErr.Number, ShouldEqual, mysqlLockWaitTimeout)
			So(countRows(), ShouldEqual, 0)
		})

		Convey("小说不存在返回 ErrNotFound", func() {
			_, err := st.Likes().Toggle(ctx, liker.UID, n.UID+100)
			So(err, ShouldEqual, repository.ErrNotFound)
		})

		Convey("统计与点赞集合", func() {
			n2 := mustCreateNovel(ctx, st, owner.UID, "T2", "fantasy")
			_, err := st.Likes().Toggle(ctx, liker.UID, n.UID)
			So(err, ShouldBeNil)
			_, err = st.Likes().Toggle(ctx, owner.UID, n.UID)
			So(err, ShouldBeNil)

			counts, err := st.Likes().CountByNovels(ctx, []int64{n.UID, n2.UID})
			So(err, ShouldBeNil)
			So(counts[n.UID], ShouldEqual, 2)
			So(counts[n2.UID], ShouldEqual, 0)

			count, err := st.Likes().CountByNovel(ctx, n.UID)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 2)

			liked, err := st.Likes().LikedNovels(ctx, liker.UID, []int64{n.UID, n2.UID})
			So(err, ShouldBeNil)
			So(liked[n.UID], ShouldBeTrue)
			So(liked[n2.UID], ShouldBeFalse)

			exists, err := st.Likes().Exists(ctx, liker.UID, n2.UID)
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)

			total, err := st.Likes().CountByUser(ctx, liker.UID)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 1)
		})
	})
}

func TestRetryable(t *testing.T) {
	Convey("点赞切换的可重试错误", t, func() {
		So(retryable(repository.ErrDuplicate), ShouldBeTrue)
		So(retryable(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: mysqlDeadlock})), ShouldBeTrue)
		So(retryable(&mysql.MySQLError{Number: mysqlLockWaitTimeout}), ShouldBeTrue)
		So(retryable(&mysql.MySQLError{Number: 1146}), ShouldBeFalse)
		So(retryable(repository.ErrNotFound), ShouldBeFalse)
		So(retryable(errors.New("connection refused")), ShouldBeFalse)
	})
}

func TestNovelRepo_Delete(t *testing.T) {
	Convey("NovelRepo.Delete 级联删除点赞", t, func() {
		ctx := context.Background()
		st, err := OpenInMemory()
		So(err, ShouldBeNil)
		Reset(func() { _ = st.Close(ctx) })

		owner := mustCreateUser(ctx, st, "owner")
		n := mustCreateNovel(ctx, st, owner.UID, "T", "fantasy")
		other := mustCreateNovel(ctx, st, owner.UID, "Other", "fantasy")
		for i := 0; i < 3; i++ {
			u := mustCreateUser(ctx, st, fmt.Sprintf("fan%d", i))
			_, err := st.Likes().Toggle(ctx, u.UID, n.UID)
			So(err, ShouldBeNil)
			_, err = st.Likes().Toggle(ctx, u.UID, other.UID)
			So(err, ShouldBeNil)
		}

		So(st.Novels().Delete(ctx, n.UID), ShouldBeNil)

		_, err = st.Novels().FindByUID(ctx, n.UID)
		So(err, ShouldEqual, repository.ErrNotFound)

		count, err := st.Likes().CountByNovel(ctx, n.UID)
		So(err, ShouldBeNil)
		So(count, ShouldEqual, 0)

		count, err = st.Likes().CountByNovel(ctx, other.UID)
		So(err, ShouldBeNil)
		So(count, ShouldEqual, 3)

		Convey("重复删除返回 ErrNotFound", func() {
			So(st.Novels().Delete(ctx, n.UID), ShouldEqual, repository.ErrNotFound)
		})
	})
}
