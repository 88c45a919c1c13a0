package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/workforce-hub/hrms/backend/internal/config"
	"github.com/workforce-hub/hrms/backend/internal/repository"
	"github.com/workforce-hub/hrms/backend/internal/seed"
	"github.com/workforce-hub/hrms/backend/internal/store"
	"github.com/workforce-hub/hrms/backend/internal/utils"
)

func main() {
	var op int
	var n int
	var companyName string
	var companyID string
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机员工, 3: 从 CSV 导入员工)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&companyName, "company", "示例科技有限公司", "随机用户所属的公司名")
	flag.StringVar(&companyID, "company-id", "", "员工所属的公司 ID")
	flag.StringVar(&file, "file", "", "要导入的 CSV 文件")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	docStore := store.NewDocumentStore(cfg.Store.Path)
	if err := docStore.Ensure(); err != nil {
		logger.Error("无法初始化数据文件", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}

	repo := repository.NewRepository(cfg, docStore)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user := utils.GenerateRandomUser(cfg.Seed.User.Password, companyName, cfg.Email.UserDomain)
			prefix := utils.LoginIDPrefix(user.CompanyName, user.Name, time.Now().Year())
			user.CreatedAt = time.Now().UTC().Format(time.RFC3339)

			created, err := repo.SignupWithLoginIDPrefix(user, prefix)
			if err != nil {
				slog.Error("无法插入用户", slog.String("error", err.Error()))
				continue
			}

			slog.Info("插入用户", "loginId", created.LoginID, "email", created.Email)
			cnt++
		}

		slog.Info("插入用户成功", slog.Int("count", cnt))
	case 2:
		if n <= 0 || companyID == "" {
			slog.Error("请输入合法的员工数量和公司 ID")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			employee := utils.GenerateRandomEmployee(companyID, cfg.Email.UserDomain)
			if _, err := repo.CreateEmployee(employee); err != nil {
				slog.Error("无法插入员工", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("插入员工成功", slog.Int("count", cnt))
	case 3:
		if file == "" || companyID == "" {
			slog.Error("请指定 CSV 文件和公司 ID")
			return
		}

		f, err := os.Open(file)
		if err != nil {
			slog.Error("打开文件失败", "error", err)
			return
		}
		defer f.Close()

		cnt, err := seed.ImportEmployees(repo, f, companyID)
		if err != nil {
			slog.Error("导入员工失败", "imported", cnt, "error", err)
			return
		}

		slog.Info("导入员工成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
