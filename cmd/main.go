// 指示: miu200521358
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/miu200521358/mu_bonetools/pkg/adapter/io_model/rig"
	"github.com/miu200521358/mu_bonetools/pkg/adapter/memhost"
	"github.com/miu200521358/mu_bonetools/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_bonetools/pkg/domain/model"
	"github.com/miu200521358/mu_bonetools/pkg/shared/config"
	"github.com/miu200521358/mu_bonetools/pkg/shared/logging"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_bonetools/pkg/usecase/port/mhost"
	"github.com/spf13/cobra"
)

// app はコマンド間で共有する状態を保持する。
type app struct {
	out        io.Writer
	errOut     io.Writer
	configFile string
	logLevel   string
	cfg        *config.Config
}

// session は1つのリグファイルを読み込んだ編集単位を表す。
type session struct {
	app       *app
	inputPath string
	scene     *memhost.Scene
	object    *memhost.Object
	usecase   *minteractor.BoneUsecase
	repo      *rig.RigRepository
}

// main はボーン編集CLIを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	root := newRootCommand(out, errOut)
	root.SetArgs(args)
	return root.Execute()
}

// newRootCommand はルートコマンドを生成する。
func newRootCommand(out io.Writer, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           messages.AppName,
		Short:         messages.HelpRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.configFile, "config", "", messages.FlagConfig)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", messages.FlagLogLevel)

	root.AddCommand(
		newDumpCommand(a),
		newShiftCommand(a),
		newAlignCommand(a),
		newRemoveCommand(a),
		newParentCommand(a),
		newCreateCommand(a),
		newLayerCommand(a),
	)
	return root
}

// setup は設定とロガーを初期化する。
func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configFile)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageConfigFailed, err)
	}
	if flag := cmd.Root().PersistentFlags().Lookup("log-level"); flag != nil {
		if err := v.BindPFlag("logging.level", flag); err != nil {
			return fmt.Errorf("%s: %w", messages.MessageConfigFailed, err)
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageConfigFailed, err)
	}
	a.cfg = cfg

	logger := logging.NewLogger(a.errOut)
	logger.SetLevel(cfg.LogLevel())
	logging.SetDefaultLogger(logger)
	return nil
}

// newUsecase は設定を反映したボーン操作ユースケースを生成する。
func (a *app) newUsecase(host mhost.IHost, repo *rig.RigRepository) *minteractor.BoneUsecase {
	return minteractor.NewBoneUsecase(minteractor.BoneUsecaseDeps{
		Host:              host,
		RigReader:         repo,
		RigWriter:         repo,
		DefaultBoneLength: a.cfg.Geometry.DefaultBoneLength,
		NearAbsTolerance:  a.cfg.Geometry.NearAbsTolerance,
		NearRelTolerance:  a.cfg.Geometry.NearRelTolerance,
	})
}

// openSession はリグファイルを読み込み、対象アーマチュアを選ぶ。
func (a *app) openSession(inputPath string, objectName string) (*session, error) {
	repo := rig.NewRigRepository()
	fmt.Fprintf(a.out, messages.LogLoadStart+"\n", inputPath)
	doc, err := a.newUsecase(nil, repo).LoadRig(repo, inputPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", messages.MessageLoadFailed, err)
	}
	scene, err := memhost.NewSceneFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", messages.MessageLoadFailed, err)
	}

	object, err := selectArmature(scene, objectName)
	if err != nil {
		return nil, err
	}
	return &session{
		app:       a,
		inputPath: inputPath,
		scene:     scene,
		object:    object,
		usecase:   a.newUsecase(scene, repo),
		repo:      repo,
	}, nil
}

// selectArmature は名前指定、アクティブオブジェクト、先頭アーマチュアの順で対象を決める。
func selectArmature(scene *memhost.Scene, objectName string) (*memhost.Object, error) {
	if objectName == "" {
		if active, ok := scene.Object(scene.ActiveObjectName()); ok && active.Type() == model.ObjectTypeArmature {
			return active, nil
		}
		for _, object := range scene.Objects() {
			if object.Type() == model.ObjectTypeArmature {
				return object, nil
			}
		}
		return nil, errors.New(messages.MessageObjectRequired)
	}
	object, ok := scene.Object(objectName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", mhost.ErrObjectNotFound, objectName)
	}
	if object.Type() != model.ObjectTypeArmature {
		return nil, fmt.Errorf(messages.MessageObjectNotArmature, objectName)
	}
	return object, nil
}

// save は編集結果を出力パスへ保存する。
func (s *session) save(outputPath string) error {
	doc, err := s.scene.ToDocument()
	if err != nil {
		return fmt.Errorf("%s: %w", messages.MessageSaveFailed, err)
	}
	resolved, err := minteractor.ResolveOutputPath(s.inputPath, outputPath, s.app.cfg.Output.Suffix)
	if err != nil {
		return err
	}
	if err := s.usecase.SaveRig(s.repo, resolved, doc); err != nil {
		return fmt.Errorf("%s: %w", messages.MessageSaveFailed, err)
	}
	fmt.Fprintf(s.app.out, messages.LogSaveSuccess+"\n", resolved)
	return nil
}
